package store

// ChartRecord is a row of user_data.
type ChartRecord struct {
	ID           int64
	UserID       int64
	IndexID      int64
	PeriodID     int64
	Terms        string
	TermID       int64
	DicIDs       string
	Idx          int64
	ChartType    string
	SelectedData string
	PrimaryData  string
	FolderID     *int64
}

// FolderRecord is a row of user_folders.
type FolderRecord struct {
	ID     int64
	UserID int64
	Name   string
}

type IndicatorRecord struct {
	ID   int64
	Name string
}
