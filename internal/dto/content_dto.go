package dto

type PosterInput struct {
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
	Time        string `json:"time" form:"time"`
	Cal         string `json:"cal" form:"cal"`
	DishType    string `json:"dish_type" form:"dish_type"`
}

type ArticleInput struct {
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
	Content     string `json:"content" form:"content"`
}

type SuggestionRequest struct {
	Search string `json:"search"`
}
