package domain

// ChartConfig is a saved chart selection owned by a single user.
type ChartConfig struct {
	ID           int64
	OwnerID      int64
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

type Folder struct {
	ID      int64
	OwnerID int64
	Name    string
}

type Indicator struct {
	ID   int64
	Name string
}
