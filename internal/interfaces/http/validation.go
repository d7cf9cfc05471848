package http

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/temucosoft-api/internal/application/dto"
	"github.com/jhoicas/temucosoft-api/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})
	return v
}

// parseBody decodifica el JSON y valida las etiquetas validate.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return domain.NewValidationError("body", "Cuerpo JSON inválido.")
	}
	return validateStruct(out)
}

// parseQuery decodifica la query string y valida.
func parseQuery(c *fiber.Ctx, out any) error {
	if err := c.QueryParser(out); err != nil {
		return domain.NewValidationError("query", "Parámetros inválidos.")
	}
	return validateStruct(out)
}

func validateStruct(out any) error {
	err := validate.Struct(out)
	if err == nil {
		return nil
	}
	ves, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	verr := &domain.ValidationError{}
	for _, fe := range ves {
		verr.Add(fieldPath(fe.Namespace()), fieldMessage(fe))
	}
	return verr
}

// fieldPath quita el nombre del struct raíz: "CreateSaleRequest.items[0].product_id" -> "items[0].product_id".
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Campo obligatorio."
	case "email":
		return "Correo electrónico inválido."
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("Debe incluir al menos %s elemento(s).", fe.Param())
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Debe tener al menos %s caracteres.", fe.Param())
		}
		return fmt.Sprintf("Debe ser mayor o igual a %s.", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Debe tener como máximo %s caracteres.", fe.Param())
		}
		return fmt.Sprintf("Debe ser menor o igual a %s.", fe.Param())
	case "oneof":
		return "Valor no permitido, use: " + strings.ReplaceAll(fe.Param(), " ", ", ") + "."
	case "datetime":
		return "Formato de fecha inválido, use AAAA-MM-DD."
	}
	return "Valor inválido."
}

// pageQuery lee limit/offset con los topes de dto.PageRequest.
func pageQuery(c *fiber.Ctx) (dto.PageRequest, error) {
	var p dto.PageRequest
	if err := parseQuery(c, &p); err != nil {
		return p, err
	}
	p.DefaultPage()
	return p, nil
}
