package api

type ErrorResponse struct {
	Detail string `json:"detail"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// SaveChartRequest is the /save-data body. Every field except folder_id is
// required; pointers tell an absent field from a zero value.
type SaveChartRequest struct {
	IndexID      *int64  `json:"p_index_id"`
	PeriodID     *int64  `json:"p_period_id"`
	Terms        *string `json:"p_terms"`
	TermID       *int64  `json:"p_term_id"`
	DicIDs       *string `json:"p_dicIds"`
	Idx          *int64  `json:"idx"`
	ChartType    *string `json:"chart_type"`
	SelectedData *string `json:"selected_data"`
	PrimaryData  *string `json:"primary_data"`
	FolderID     *int64  `json:"folder_id,omitempty"`
}

// MissingFields returns the JSON names of required fields that are absent
// or null, in declaration order.
func (r SaveChartRequest) MissingFields() []string {
	required := []struct {
		name    string
		present bool
	}{
		{"p_index_id", r.IndexID != nil},
		{"p_period_id", r.PeriodID != nil},
		{"p_terms", r.Terms != nil},
		{"p_term_id", r.TermID != nil},
		{"p_dicIds", r.DicIDs != nil},
		{"idx", r.Idx != nil},
		{"chart_type", r.ChartType != nil},
		{"selected_data", r.SelectedData != nil},
		{"primary_data", r.PrimaryData != nil},
	}

	var missing []string
	for _, f := range required {
		if !f.present {
			missing = append(missing, f.name)
		}
	}
	return missing
}

type SaveChartResponse struct {
	Message string `json:"message"`
	DataID  int64  `json:"data_id"`
}

type Chart struct {
	ID           int64  `json:"id"`
	UserID       int64  `json:"user_id"`
	IndexID      int64  `json:"p_index_id"`
	PeriodID     int64  `json:"p_period_id"`
	Terms        string `json:"p_terms"`
	TermID       int64  `json:"p_term_id"`
	DicIDs       string `json:"p_dicIds"`
	Idx          int64  `json:"idx"`
	ChartType    string `json:"chart_type"`
	SelectedData string `json:"selected_data"`
	PrimaryData  string `json:"primary_data"`
	FolderID     *int64 `json:"folder_id"`
}

type FolderRequest struct {
	Name string `json:"name"`
}

type Folder struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
}

type FolderResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	UserID  int64  `json:"user_id"`
	Message string `json:"message"`
}

type Indicator struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
