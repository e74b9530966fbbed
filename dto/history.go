package dto

type HistoryRangeQuery struct {
	Type    string `form:"type"`
	FromPos int    `form:"from_pos,default=1" validate:"omitempty,min=1"`
	ToPos   int    `form:"to_pos,default=10" validate:"omitempty,min=1"`
}
