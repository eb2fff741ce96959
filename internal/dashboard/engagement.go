package dashboard

import (
	"sort"
	"strconv"
	"time"

	"github.com/pitchlane/startup-analytics-service/internal/models"
)

// engagementProfiles folds the raw event list into one profile per
// distinct visitor email, in arrival order. Kind-specific payloads use a
// latest-wins merge: an event overwrites its snapshot only when its
// timestamp is on or after the newest event seen so far for that
// visitor, so out-of-order input converges on the same result.
//
// A malformed property skips that field, never the fold: other events
// and other visitors are unaffected.
func engagementProfiles(events []models.RawEvent, reviews map[string]models.Review, now time.Time) []EngagementProfile {
	type state struct {
		profile EngagementProfile
		last    time.Time
	}

	byEmail := make(map[string]*state)
	var order []string

	for _, ev := range events {
		props := ev.Properties
		email, ok := asString(props[models.PropEmail])
		if !ok || email == "" {
			continue
		}
		ts, ok := eventTime(ev)
		if !ok {
			continue
		}

		st := byEmail[email]
		if st == nil {
			st = &state{profile: EngagementProfile{Email: email}}
			byEmail[email] = st
			order = append(order, email)
		}

		st.profile.TotalVisits++
		latest := !ts.Before(st.last)

		switch models.EventKind(ev.Name) {
		case models.KindPageVisit:
			if spent, ok := asFloat(props[models.PropTimeOnPage]); ok {
				st.profile.TotalTimeSpentOnPages += spent
			}
			if latest {
				st.profile.UserBrowser = asStringPtr(props[models.PropBrowser])
				st.profile.UserDeviceType = asStringPtr(props[models.PropDeviceType])
				st.profile.UserOs = asStringPtr(props[models.PropOS])
			}

		case models.KindPitchDeck:
			if latest {
				st.profile.LatestPitchDeck = pitchDeckSnapshot(props)
			}

		case models.KindVideo:
			if latest {
				st.profile.LatestVideo = VideoSnapshot{
					TotalTimeSpentOnVideo: asFloatPtr(props[models.PropTimeOnVideo]),
					FinishedVideo:         asBoolPtr(props[models.PropFinishedVideo]),
				}
			}

		case models.KindDeckDownload:
			if latest {
				st.profile.LatestDeckDownload = DeckDownloadSnapshot{
					DeckDownloadYes: asBoolPtr(props[models.PropDeckDownloaded]),
				}
			}

		case models.KindPassButton:
			if latest {
				st.profile.LatestPassButton = PassButtonSnapshot{
					PassYes: asBoolPtr(props[models.PropPassYes]),
				}
			}

		case models.KindConnectBtn:
			if latest {
				st.profile.LatestConnectButton = ConnectButtonSnapshot{
					ConnectYes: asBoolPtr(props[models.PropConnectYes]),
				}
			}

		case models.KindTotalShares:
			// Shares accumulate rather than overwrite; a share event
			// without a count property counts as one share.
			if raw, present := props[models.PropShareCount]; present {
				if n, ok := asFloat(raw); ok {
					st.profile.TotalShares += n
				}
			} else {
				st.profile.TotalShares++
			}
		}

		// Advance the high-water mark last so equal-timestamp events
		// still take the latest-wins branch above.
		if ts.After(st.last) {
			st.last = ts
		}
	}

	profiles := make([]EngagementProfile, 0, len(order))
	for _, email := range order {
		st := byEmail[email]
		st.profile.LastVisit = now.Sub(st.last).Seconds()

		if review, ok := reviews[email]; ok {
			if review.IsAnonymous {
				st.profile.Email = anonymousIdentity
				review.Email = anonymousIdentity
			}
			st.profile.Review = &review
		}

		profiles = append(profiles, st.profile)
	}
	return profiles
}

// pitchDeckSnapshot reshapes the raw per-slide-time map into an ordered
// slide sequence. Slide keys arrive as strings ("0", "1", ...); bad keys
// or non-numeric times drop that slide only.
func pitchDeckSnapshot(props map[string]interface{}) PitchDeckSnapshot {
	snap := PitchDeckSnapshot{
		NumberSlidesViewed: asFloatPtr(props[models.PropSlidesViewed]),
	}

	totalTime, ok := asFloat(props[models.PropTotalTime])
	if !ok {
		totalTime = 0
	}
	snap.TotalTime = &totalTime

	if rawSlides, ok := props[models.PropTimePerSlide].(map[string]interface{}); ok {
		slides := make([]SlideTime, 0, len(rawSlides))
		for key, value := range rawSlides {
			idx, err := strconv.Atoi(key)
			if err != nil {
				continue
			}
			spent, ok := asFloat(value)
			if !ok {
				continue
			}
			slides = append(slides, SlideTime{Slide: idx, Time: spent})
		}
		sort.Slice(slides, func(i, j int) bool { return slides[i].Slide < slides[j].Slide })
		snap.TimeSpentPerSlide = slides
	}

	return snap
}
