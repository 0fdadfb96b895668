package responses

type Dashboard struct {
	TotalImages        int64 `json:"totalImages"`
	TotalConsultations int64 `json:"totalConsultations"`
	TotalPatients      int64 `json:"totalPatients"`
}
