package forms

import (
	"net/http"

	"quillblog/app/models"
)

// CommentForm is the visitor-facing comment form.
type CommentForm struct {
	Author string `form:"author" validate:"required,max=200"`
	Text   string `form:"text" validate:"required"`

	Errors Errors `form:"-" validate:"-"`
}

var commentWidgets = map[string]Widget{
	"author": {Type: "text", Class: "textinputclass"},
	"text":   {Type: "textarea", Class: "editable medium-editor-textarea"},
}

func NewCommentForm() *CommentForm {
	return &CommentForm{Errors: Errors{}}
}

// BindCommentForm reads and validates a submitted comment form.
func BindCommentForm(r *http.Request) *CommentForm {
	parse(r)
	f := &CommentForm{
		Author: value(r, "author"),
		Text:   value(r, "text"),
		Errors: Errors{},
	}
	check(f, f.Errors)
	return f
}

func (f *CommentForm) Valid() bool {
	return !f.Errors.Any()
}

// Comment builds an unsaved comment from the form.
func (f *CommentForm) Comment() *models.Comment {
	return &models.Comment{Author: f.Author, Text: f.Text}
}

func (f *CommentForm) Widgets() map[string]Widget {
	return commentWidgets
}
