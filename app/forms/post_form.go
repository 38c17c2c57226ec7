package forms

import (
	"net/http"
	"strconv"

	"quillblog/app/models"
)

// PostForm is the create and edit form for posts.
type PostForm struct {
	Author int    `form:"author" validate:"required,gt=0"`
	Title  string `form:"title" validate:"required,max=200"`
	Text   string `form:"text" validate:"required"`

	Errors Errors `form:"-" validate:"-"`
}

var postWidgets = map[string]Widget{
	"author": {Type: "select"},
	"title":  {Type: "text", Class: "textinputclass"},
	"text":   {Type: "textarea", Class: "editable medium-editor-textarea postcontent"},
}

// NewPostForm returns a form prefilled from post, or an empty form for nil.
func NewPostForm(post *models.Post) *PostForm {
	f := &PostForm{Errors: Errors{}}
	if post != nil {
		f.Author = post.AuthorID
		f.Title = post.Title
		f.Text = post.Text
	}
	return f
}

// BindPostForm reads and validates a submitted post form.
func BindPostForm(r *http.Request) *PostForm {
	parse(r)
	f := &PostForm{
		Title:  value(r, "title"),
		Text:   value(r, "text"),
		Errors: Errors{},
	}

	if raw := value(r, "author"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			f.Errors.Add("author", invalidChoice)
		} else {
			f.Author = id
		}
	}

	check(f, f.Errors)
	return f
}

func (f *PostForm) Valid() bool {
	return !f.Errors.Any()
}

// Apply copies the form's values onto post.
func (f *PostForm) Apply(post *models.Post) {
	post.AuthorID = f.Author
	post.Title = f.Title
	post.Text = f.Text
}

func (f *PostForm) Widgets() map[string]Widget {
	return postWidgets
}
