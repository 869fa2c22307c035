package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"swingconnect/internal/models"
)

// InitValidator 向 gin 的 binding 校验器注册自定义规则
func InitValidator() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("category", validateCategory); err != nil {
		return err
	}
	if err := v.RegisterValidation("targettype", validateTargetType); err != nil {
		return err
	}
	return nil
}

func validateCategory(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	for _, c := range models.Categories {
		if c == val {
			return true
		}
	}
	return false
}

func validateTargetType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case models.TargetPost, models.TargetComment:
		return true
	}
	return false
}
