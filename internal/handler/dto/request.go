package dto

type RegisterUserRequest struct {
	ID     string   `json:"id" binding:"required"`
	Topics []string `json:"interested_topics"`
}

type RegisterConferenceRequest struct {
	Name      string   `json:"name" binding:"required"`
	Location  string   `json:"location" binding:"required"`
	Topics    []string `json:"topics"`
	StartTime string   `json:"start_time" binding:"required"`
	EndTime   string   `json:"end_time" binding:"required"`
	Capacity  int      `json:"capacity" binding:"required,gt=0"`
}

type BookRequest struct {
	UserID string `json:"user_id" binding:"required"`
}
