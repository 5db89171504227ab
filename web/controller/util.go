package controller

import (
	"errors"
	"net/http"
	"strconv"
	"unicode"

	"publigo/database"
	"publigo/database/model"
	"publigo/logger"
	"publigo/util/crypto"
	"publigo/web/entity"
	"publigo/web/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// caller returns the authenticated user loaded by the auth middleware.
func caller(c *gin.Context) *model.Utilisateur {
	if obj, ok := c.Get(middleware.CallerKey); ok {
		if user, ok := obj.(*model.Utilisateur); ok {
			return user
		}
	}
	return nil
}

// pathId parses the numeric id path parameter, replying 400 on failure.
func pathId(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, entity.ErrorBody{Error: "invalid id"})
		return 0, false
	}
	return id, true
}

// bindingError replies 400 with field-level detail extracted from the
// validator, or a generic bad-request body for malformed payloads.
func bindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]entity.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			reason := fe.Tag()
			if fe.Param() != "" {
				reason += "=" + fe.Param()
			}
			fields = append(fields, entity.FieldError{
				Field:  jsonFieldName(fe.Field()),
				Reason: reason,
			})
		}
		c.JSON(http.StatusBadRequest, entity.ErrorBody{Error: "validation failed", Fields: fields})
		return
	}
	c.JSON(http.StatusBadRequest, entity.ErrorBody{Error: "malformed request body"})
}

// jsonFieldName lowers the first rune of a struct field name to match the
// json tag convention used by the request structs.
func jsonFieldName(field string) string {
	runes := []rune(field)
	if len(runes) > 0 {
		runes[0] = unicode.ToLower(runes[0])
	}
	return string(runes)
}

// serviceError maps a service failure onto the error taxonomy: 404 for
// unknown records, 409 for uniqueness conflicts, 400 for weak passwords,
// 500 otherwise.
func serviceError(c *gin.Context, err error) {
	switch {
	case database.IsNotFound(err):
		c.JSON(http.StatusNotFound, entity.ErrorBody{Error: "not found"})
	case database.IsDuplicate(err):
		c.JSON(http.StatusConflict, entity.ErrorBody{Error: "login or mail already in use"})
	case errors.Is(err, crypto.ErrWeakPassword):
		c.JSON(http.StatusBadRequest, entity.ErrorBody{
			Error:  "validation failed",
			Fields: []entity.FieldError{{Field: "plainPassword", Reason: err.Error()}},
		})
	default:
		logger.Warning("request failed:", err)
		c.JSON(http.StatusInternalServerError, entity.ErrorBody{Error: "internal error"})
	}
}

// forbidden replies 403 without detailing the policy rule that failed.
func forbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, entity.ErrorBody{Error: "forbidden"})
}
