package model

type School struct {
	SchoolID string `bson:"school_id" json:"school_id"`
	Name     string `bson:"name" json:"name"`
	City     string `bson:"city" json:"city"`
}
