package model

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// ListTutorialsQuery filters the tutorial list by a title substring.
// An empty Title lists everything; any length is accepted.
type ListTutorialsQuery struct {
	Title string `query:"title"`
}

func (q *ListTutorialsQuery) Validate() error {
	return nil
}

// ListPublishedTutorialsQuery carries no input; it exists so the route fits
// the typed handler pipeline.
type ListPublishedTutorialsQuery struct{}

func (q *ListPublishedTutorialsQuery) Validate() error {
	return nil
}

// TutorialIDParam addresses a single tutorial by path id.
type TutorialIDParam struct {
	ID int64 `param:"id" json:"-"`
}

func (p *TutorialIDParam) Validate() error {
	return validate.Struct(p)
}

// CreateTutorialPayload is the POST body. IsPublished is accepted for
// compatibility but ignored: new tutorials always start unpublished.
type CreateTutorialPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	IsPublished bool   `json:"isPublished"`
}

func (p *CreateTutorialPayload) Validate() error {
	return validate.Struct(p)
}

// UpdateTutorialPayload is the PUT body plus the path id. All three mutable
// fields are replaced.
type UpdateTutorialPayload struct {
	ID          int64  `param:"id" json:"-"`
	Title       string `json:"title"`
	Description string `json:"description"`
	IsPublished bool   `json:"isPublished"`
}

func (p *UpdateTutorialPayload) Validate() error {
	return validate.Struct(p)
}

// DeleteAllTutorialsPayload carries no input.
type DeleteAllTutorialsPayload struct{}

func (p *DeleteAllTutorialsPayload) Validate() error {
	return nil
}
