package splatnet

import "time"

// Wire types for the splatoon3.ink JSON feeds. Only the fields the
// pipeline reads are declared.

type scheduleResponse struct {
	Data struct {
		CoopGroupingSchedule struct {
			RegularSchedules struct {
				Nodes []scheduleNode `json:"nodes"`
			} `json:"regularSchedules"`
		} `json:"coopGroupingSchedule"`
	} `json:"data"`
}

type scheduleNode struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Setting   struct {
		Boss struct {
			ID string `json:"id"`
		} `json:"boss"`
		CoopStage struct {
			ID    string   `json:"id"`
			Image imageRef `json:"image"`
		} `json:"coopStage"`
		Weapons []struct {
			SplatoonInkID string   `json:"__splatoon3ink_id"`
			Image         imageRef `json:"image"`
		} `json:"weapons"`
	} `json:"setting"`
}

type imageRef struct {
	URL string `json:"url"`
}

type localeResponse struct {
	Stages  map[string]localeName `json:"stages"`
	Weapons map[string]localeName `json:"weapons"`
}

type localeName struct {
	Name string `json:"name"`
}
