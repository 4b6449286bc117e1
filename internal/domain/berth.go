package domain

type BerthType string

const (
	BerthLower     BerthType = "LB"
	BerthMiddle    BerthType = "MB"
	BerthUpper     BerthType = "UB"
	BerthSideLower BerthType = "SL"
	BerthSideUpper BerthType = "SU"
)

type Berth struct {
	ID       string    `json:"id"`
	Type     BerthType `json:"type"`
	Bay      int       `json:"bay"`
	Occupied bool      `json:"occupied"`
}
