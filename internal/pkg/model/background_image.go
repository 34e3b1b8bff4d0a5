package model

type BackgroundImage struct {
	Id    uint64 `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

func (BackgroundImage) TableName() string {
	return "background_image"
}
