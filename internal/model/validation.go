package model

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Producto validation messages, in check order.
const (
	MsgNombreRequerido      = "El nombre del producto es requerido"
	MsgNombreLargo          = "El nombre no puede exceder 255 caracteres"
	MsgCodigoRequerido      = "El código del producto es requerido"
	MsgCodigoInvalido       = "El código solo puede contener letras y números"
	MsgEmailRequerido       = "El email de contacto es requerido"
	MsgEmailInvalido        = "El email de contacto no es válido"
	MsgFechaRequerida       = "La fecha de lanzamiento es requerida"
	MsgFechaInvalida        = "La fecha de lanzamiento no es válida"
	MsgHoraRequerida        = "La hora disponible es requerida"
	MsgHoraInvalida         = "La hora disponible no es válida"
	MsgFechaHoraRequerida   = "La fecha y hora de creación es requerida"
	MsgFechaHoraInvalida    = "La fecha y hora de creación no es válida"
	MsgCategoriaInvalida    = "Debe seleccionar una categoría válida"
	MsgTelefonoRequerido    = "El teléfono de soporte es requerido"
	MsgTelefonoInvalido     = "El teléfono de soporte no es válido"
	MsgPrecioInvalido       = "El precio debe ser un número válido mayor o igual a 0"
	MsgDescuentoInvalido    = "El descuento debe ser un porcentaje entre 0 y 100"
	MsgCategoriaNombreReq   = "El nombre es requerido"
	MsgDescripcionRequerida = "La descripción es requerida"
)

const maxNombreLen = 255

var (
	validate = validator.New()

	telefonoPattern = regexp.MustCompile(`^[+]?[0-9()\-\s]+$`)
	horaPattern     = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9](:[0-5][0-9])?$`)
	fechaHoraRegexp = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}[T\s]\d{2}:\d{2}(:\d{2})?$`)

	horaLayouts      = []string{"15:04:05", "15:04"}
	fechaHoraLayouts = []string{
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04",
	}

	cien = decimal.NewFromInt(100)
)

// ProductoErrors is the ordered list of producto validation messages.
type ProductoErrors []string

func (e ProductoErrors) Error() string {
	return strings.Join(e, "; ")
}

// Is matches ErrValidation.
func (e ProductoErrors) Is(target error) bool {
	return isValidationTarget(target)
}

// CategoriaErrors maps a categoria field name to its validation message.
type CategoriaErrors map[string]string

func (e CategoriaErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, k+": "+e[k])
	}
	return strings.Join(msgs, "; ")
}

// Is matches ErrValidation.
func (e CategoriaErrors) Is(target error) bool {
	return isValidationTarget(target)
}

func isValidationTarget(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == ErrCodeValidationFailed
}

// Validate runs every producto check and returns all failures in a fixed
// order, or nil when the producto is valid.
func (p *Producto) Validate() ProductoErrors {
	var errs ProductoErrors

	switch {
	case p.Nombre == "":
		errs = append(errs, MsgNombreRequerido)
	case len(p.Nombre) > maxNombreLen:
		errs = append(errs, MsgNombreLargo)
	}

	switch {
	case p.Codigo == "":
		errs = append(errs, MsgCodigoRequerido)
	case validate.Var(p.Codigo, "alphanum") != nil:
		errs = append(errs, MsgCodigoInvalido)
	}

	switch {
	case p.EmailContacto == "":
		errs = append(errs, MsgEmailRequerido)
	case validate.Var(p.EmailContacto, "email") != nil:
		errs = append(errs, MsgEmailInvalido)
	}

	switch {
	case p.FechaLanzamiento == "":
		errs = append(errs, MsgFechaRequerida)
	case !isValidDate(p.FechaLanzamiento):
		errs = append(errs, MsgFechaInvalida)
	}

	switch {
	case p.HoraDisponible == "":
		errs = append(errs, MsgHoraRequerida)
	case !isValidTime(p.HoraDisponible):
		errs = append(errs, MsgHoraInvalida)
	}

	switch {
	case p.FechaHoraCreacion == "":
		errs = append(errs, MsgFechaHoraRequerida)
	case !isValidDateTime(p.FechaHoraCreacion):
		errs = append(errs, MsgFechaHoraInvalida)
	}

	if p.CategoriaID <= 0 {
		errs = append(errs, MsgCategoriaInvalida)
	}

	switch {
	case p.TelefonoSoporte == "":
		errs = append(errs, MsgTelefonoRequerido)
	case !telefonoPattern.MatchString(p.TelefonoSoporte):
		errs = append(errs, MsgTelefonoInvalido)
	}

	if !p.Precio.Valid || p.Precio.Decimal.IsNegative() {
		errs = append(errs, MsgPrecioInvalido)
	}

	if !p.DescuentoPorcentaje.Valid ||
		p.DescuentoPorcentaje.Decimal.IsNegative() ||
		p.DescuentoPorcentaje.Decimal.GreaterThan(cien) {
		errs = append(errs, MsgDescuentoInvalido)
	}

	return errs
}

// Validate checks the required categoria fields.
func (c *Categoria) Validate() CategoriaErrors {
	errs := CategoriaErrors{}
	if c.Nombre == "" {
		errs["nombre"] = MsgCategoriaNombreReq
	}
	if c.Descripcion == "" {
		errs["descripcion"] = MsgDescripcionRequerida
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func isValidDate(v string) bool {
	return roundTrips("2006-01-02", v)
}

func isValidTime(v string) bool {
	for _, layout := range horaLayouts {
		if roundTrips(layout, v) {
			return true
		}
	}
	return horaPattern.MatchString(v)
}

func isValidDateTime(v string) bool {
	for _, layout := range fechaHoraLayouts {
		if roundTrips(layout, v) {
			return true
		}
	}
	return fechaHoraRegexp.MatchString(v)
}

// roundTrips reports whether v parses with layout and formats back to
// exactly v.
func roundTrips(layout, v string) bool {
	t, err := time.Parse(layout, v)
	return err == nil && t.Format(layout) == v
}
