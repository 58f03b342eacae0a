package weather

// On-disk record shapes. Field names are part of the state-file format and
// must stay stable across versions.

type geoRecord struct {
	LocationID   string  `json:"location_id"`
	LocationName string  `json:"location_name"`
	TS           float64 `json:"ts"`
}

type nowRecord struct {
	LocationID   string  `json:"location_id"`
	LocationName string  `json:"location_name"`
	TempC        string  `json:"temp_c"`
	Text         string  `json:"text"`
	Icon         string  `json:"icon"`
	ObsTime      string  `json:"obs_time"`
	UpdateTime   string  `json:"update_time"`
	LastOKTS     float64 `json:"last_ok_ts"`
}

type forecastRecord struct {
	LocationID   string        `json:"location_id"`
	LocationName string        `json:"location_name"`
	Daily        []dailyRecord `json:"daily"`
}

type dailyRecord struct {
	Date    string `json:"date"`
	TextDay string `json:"text_day"`
	TempMax string `json:"temp_max"`
	TempMin string `json:"temp_min"`
	IconDay string `json:"icon_day"`
}
