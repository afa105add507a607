package controllers

import (
	"errors"

	"github.com/Govind-619/BooksWishlist/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// UserRequest is the body of POST /users
type UserRequest struct {
	FirstName string `form:"first_name" json:"first_name" binding:"required"`
	LastName  string `form:"last_name" json:"last_name" binding:"required"`
	Email     string `form:"email" json:"email" binding:"required"`
	Password  string `form:"password" json:"password" binding:"required"`
}

// BookRequest is the body of POST /books and POST /users/:id/books
type BookRequest struct {
	Title   string `form:"title" json:"title" binding:"required"`
	Author  string `form:"author" json:"author" binding:"required"`
	ISBN    string `form:"isbn" json:"isbn" binding:"required"`
	PubDate string `form:"pub_date" json:"pub_date" binding:"required"`
}

// BookUpdateRequest is the body of PUT /users/:id/books/:isbn. The ISBN
// comes from the path.
type BookUpdateRequest struct {
	Title   string `form:"title" json:"title" binding:"required"`
	Author  string `form:"author" json:"author" binding:"required"`
	PubDate string `form:"pub_date" json:"pub_date" binding:"required"`
}

// missingFieldMessages maps struct fields to their "not provided" message
var missingFieldMessages = map[string]string{
	"FirstName": "First name not provided",
	"LastName":  "Last name not provided",
	"Email":     "Email address not provided",
	"Password":  "Password not provided",
	"Title":     "Title not provided",
	"Author":    "Author not provided",
	"ISBN":      "ISBN not provided",
	"PubDate":   "Publication date not provided",
}

// bindRequest binds a JSON or form body into req. Failures are 400s naming
// the first missing field.
func bindRequest(c *gin.Context, req interface{}) error {
	err := c.ShouldBind(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if message, ok := missingFieldMessages[verrs[0].Field()]; ok {
			return utils.BadRequestError(message, err)
		}
	}
	utils.LogError("Invalid request body for %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	return utils.BadRequestError(utils.ErrInvalidBody, err)
}
