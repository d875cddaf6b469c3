package optparse

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
)

///////////////////////////////////////////////////////////////////////////////
// Struct binding
///////////////////////////////////////////////////////////////////////////////

// Struct tags read by Bind.
const (
	OptTag      = "opt"
	DefaultTag  = "default"
	requiredMod = "required"
)

var (
	ErrBindTarget = errors.New("invalid bind target")
	ErrBindTag    = errors.New("invalid opt tag")
	ErrValidation = errors.New("validation failed")
)

// Validatable is implemented by bind targets that check their own fields.
// Bind calls Validate once every field is populated.
type Validatable interface {
	Validate() error
}

// Bind copies option values into the struct dest points to.
//
// Fields are matched through their opt tag, `opt:"name"` or
// `opt:"name,required"`. A struct field whose tag names a command is bound
// from that command's parser. When an option has no value the default tag,
// if any, is converted into the field instead; required options that were
// never given fail with ErrMissingOption. Targets implementing Validatable
// are validated last.
//
//	type Flags struct {
//		Verbose bool          `opt:"verbose"`
//		Level   int           `opt:"level" default:"3"`
//		Tags    []string      `opt:"tags"`
//		Push    struct {
//			Force bool `opt:"force"`
//		} `opt:"push"`
//	}
func (p *Parser) Bind(dest any) error {
	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: expected a non-nil pointer to a struct, got %T", ErrBindTarget, dest)
	}

	plan, err := bindPlans.get(rv.Elem().Type())
	if err != nil {
		return err
	}
	if err := plan.execute(p, rv.Elem()); err != nil {
		return err
	}

	if v, ok := dest.(Validatable); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrValidation, err)
		}
	}
	return nil
}

// bindPlan is the linked list of fields Bind visits for one struct type.
type bindPlan struct {
	structType reflect.Type
	head       *bindStep
}

type bindStep struct {
	next         *bindStep
	sub          *bindPlan // set for fields bound from a command parser
	fieldIndex   int
	fieldName    string
	key          string
	required     bool
	defaultValue string
	hasDefault   bool
}

func (plan *bindPlan) execute(p *Parser, dest reflect.Value) error {
	for step := plan.head; step != nil; step = step.next {
		field := dest.Field(step.fieldIndex)
		if !field.CanSet() {
			continue
		}

		var err error
		if step.sub != nil {
			err = step.bindCommand(p, field)
		} else {
			err = step.bindOption(p, field)
		}
		if err != nil {
			return fmt.Errorf("failed to bind field %s: %w", step.fieldName, err)
		}
	}
	return nil
}

func (step *bindStep) bindOption(p *Parser, field reflect.Value) error {
	opt := p.Option(step.key)
	if opt == nil {
		return fmt.Errorf("%w: no option '%s'", ErrBindTarget, step.key)
	}
	if step.required && opt.count == 0 {
		return missingOptionsError([]string{step.key})
	}

	value := opt.Value()
	if value == nil {
		if step.hasDefault {
			return setFieldValue(field, step.defaultValue)
		}
		return nil
	}
	return assignValue(field, value)
}

func (step *bindStep) bindCommand(p *Parser, field reflect.Value) error {
	sub := p.Command(step.key)
	if sub == nil {
		return fmt.Errorf("%w: no command '%s'", ErrBindTarget, step.key)
	}

	if field.Kind() == reflect.Pointer {
		if field.IsNil() {
			field.Set(reflect.New(field.Type().Elem()))
		}
		field = field.Elem()
	}
	return step.sub.execute(sub, field)
}

// assignValue stores a cast option value, directly when the types agree and
// through its string form otherwise.
func assignValue(field reflect.Value, value any) error {
	rv := reflect.ValueOf(value)
	if rv.Type().AssignableTo(field.Type()) {
		field.Set(rv)
		return nil
	}

	if list, ok := value.([]string); ok && field.Kind() == reflect.Slice {
		return setSliceElements(field, list)
	}
	if rv.Type().ConvertibleTo(field.Type()) && rv.Kind() == field.Kind() {
		field.Set(rv.Convert(field.Type()))
		return nil
	}

	return setFieldValue(field, fmt.Sprint(value))
}

///////////////////////////////////////////////////////////////////////////////
// Plan cache
///////////////////////////////////////////////////////////////////////////////

var (
	bindPlans           = newPlanCache()
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

// planCache caches bind plans by destination type. It is safe for
// concurrent use.
type planCache struct {
	plans map[reflect.Type]*bindPlan
	mu    sync.RWMutex
}

func newPlanCache() *planCache {
	return &planCache{plans: make(map[reflect.Type]*bindPlan)}
}

func (c *planCache) get(typ reflect.Type) (*bindPlan, error) {
	c.mu.RLock()
	plan, ok := c.plans[typ]
	c.mu.RUnlock()
	if ok {
		return plan, nil
	}

	plan, err := newBindPlan(typ)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.plans[typ] = plan
	c.mu.Unlock()
	return plan, nil
}

func newBindPlan(typ reflect.Type) (*bindPlan, error) {
	plan := &bindPlan{structType: typ}
	var current *bindStep

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		tag, ok := field.Tag.Lookup(OptTag)
		if !ok || tag == "-" {
			continue
		}

		step, err := newBindStep(field, i, tag)
		if err != nil {
			return nil, err
		}

		if plan.head == nil {
			plan.head = step
		} else {
			current.next = step
		}
		current = step
	}

	return plan, nil
}

func newBindStep(field reflect.StructField, index int, tag string) (*bindStep, error) {
	parts := strings.Split(tag, ",")
	step := &bindStep{
		fieldIndex: index,
		fieldName:  field.Name,
		key:        stripDashes(strings.TrimSpace(parts[0])),
	}
	if step.key == "" {
		return nil, fmt.Errorf("%w: field %s has an empty name", ErrBindTag, field.Name)
	}

	for _, mod := range parts[1:] {
		switch strings.TrimSpace(mod) {
		case requiredMod:
			step.required = true
		default:
			return nil, fmt.Errorf("%w: field %s has unknown modifier %q", ErrBindTag, field.Name, mod)
		}
	}

	step.defaultValue, step.hasDefault = field.Tag.Lookup(DefaultTag)

	ft := field.Type
	if ft.Kind() == reflect.Pointer {
		ft = ft.Elem()
	}
	if ft.Kind() == reflect.Struct && !isSpecialStructType(ft) &&
		!reflect.PointerTo(ft).Implements(textUnmarshalerType) {
		sub, err := newBindPlan(ft)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}
		step.sub = sub
	}

	return step, nil
}
