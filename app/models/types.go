package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Post represents a blog post. A post with a nil PublishedAt is a draft.
type Post struct {
	ID          int        `json:"id" validate:"gte=0"`
	AuthorID    int        `json:"author_id" form:"author" validate:"required,gt=0"`
	Title       string     `json:"title" form:"title" validate:"required,max=200"`
	Text        string     `json:"text" form:"text" validate:"required"`
	CreatedAt   time.Time  `json:"created_at"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Author      *User      `json:"-" validate:"-"`
	Comments    []*Comment `json:"-" validate:"-"`
}

// Comment represents a visitor comment on a blog post.
type Comment struct {
	ID        int       `json:"id" validate:"gte=0"`
	PostID    int       `json:"post_id" validate:"required,gt=0"`
	Author    string    `json:"author" form:"author" validate:"required,max=200"`
	Text      string    `json:"text" form:"text" validate:"required"`
	CreatedAt time.Time `json:"created_at"`
	Approved  bool      `json:"approved"`
	Post      *Post     `json:"-" validate:"-"`
}

// User is an account allowed to author posts and moderate comments.
type User struct {
	ID           int       `json:"id" validate:"gte=0"`
	Username     string    `json:"username" form:"username" validate:"required,min=3,max=150,excludesall= /"`
	PasswordHash string    `json:"password_hash" validate:"required"`
	CreatedAt    time.Time `json:"created_at"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("form"); name != "" {
			return name
		}
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldErrors flattens a validation error into a message per field name.
// Non-validation errors yield nil.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := fields[fe.Field()]; seen {
			continue
		}
		fields[fe.Field()] = Message(fe)
	}
	return fields
}

// Message renders a single field error the way the forms display it.
func Message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters (it has %d).", fe.Param(), utf8.RuneCountInString(fmt.Sprint(fe.Value())))
	case "min":
		return fmt.Sprintf("Ensure this value has at least %s characters (it has %d).", fe.Param(), utf8.RuneCountInString(fmt.Sprint(fe.Value())))
	case "gt", "gte":
		return "Select a valid choice."
	case "excludesall":
		return "Enter a valid value."
	default:
		return fmt.Sprintf("Failed the %q check.", fe.Tag())
	}
}
