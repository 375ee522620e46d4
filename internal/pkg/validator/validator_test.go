package validator

import (
	"context"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testStruct1 struct {
	Field1      string        `json:"field1" validate:"required"`
	Field2      string        `yaml:"field2" validate:"required"`
	Field3      string        `json:"-" validate:"required"`
	Nested      []testStruct2 `yaml:"nested" validate:"dive"`
	testStruct2               // anonymous
}

type testStruct2 struct {
	Field4 string `json:"field4" validate:"required"`
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()
	err := New().Validate(context.Background(), testStruct1{Nested: []testStruct2{{}, {}}})
	expected := `
- "field1" is a required field
- "field2" is a required field
- "Field3" is a required field
- "nested[0].field4" is a required field
- "nested[1].field4" is a required field
- "field4" is a required field
`
	require.Error(t, err)
	assert.Equal(t, strings.TrimSpace(expected), err.Error())
}

func TestValidateStructWithNamespace(t *testing.T) {
	t.Parallel()
	err := New().ValidateCtx(context.Background(), &testStruct2{}, "", "my.value")
	require.Error(t, err)
	assert.Equal(t, `"my.value.field4" is a required field`, err.Error())
}

func TestValidateSlice(t *testing.T) {
	t.Parallel()
	err := New().Validate(context.Background(), []testStruct2{{}, {}})
	expected := `
- "[0].field4" is a required field
- "[1].field4" is a required field
`
	require.Error(t, err)
	assert.Equal(t, strings.TrimSpace(expected), err.Error())
}

func TestValidateValue(t *testing.T) {
	t.Parallel()
	err := New().ValidateCtx(context.Background(), "", "required", "")
	require.Error(t, err)
	assert.Equal(t, `is a required field`, err.Error())

	err = New().ValidateCtx(context.Background(), "", "required", "my.value")
	require.Error(t, err)
	assert.Equal(t, `"my.value" is a required field`, err.Error())

	require.NoError(t, New().ValidateCtx(context.Background(), "foo", "required", "my.value"))
}

func TestValidateMachineName(t *testing.T) {
	t.Parallel()
	cases := []struct {
		value string
		valid bool
	}{
		{"core", true},
		{"test_mybundle_core", true},
		{"abc123", true},
		{"Core", false},
		{"my-package", false},
		{"", false},
	}

	v := New()
	for i, c := range cases {
		err := v.ValidateCtx(context.Background(), c.value, "machinename", "name")
		if c.valid {
			require.NoError(t, err, `case: %d`, i+1)
		} else {
			require.Error(t, err, `case: %d`, i+1)
			assert.Equal(t, `"name" can only contain lowercase alphanumeric characters and underscore`, err.Error())
		}
	}
}

func TestValidateErrorMsgFunc(t *testing.T) {
	t.Parallel()
	rule := Rule{
		Tag: "my_rule",
		Func: func(_ context.Context, fl validator.FieldLevel) bool {
			return false
		},
		ErrorMsgFunc: func(fe validator.FieldError) string {
			if fe.Value() == "foo" {
				return "error message for foo"
			}
			return "other error message"
		},
	}

	err := New(rule).ValidateCtx(context.Background(), "foo", "my_rule", "my.value")
	require.Error(t, err)
	assert.Equal(t, `"my.value" error message for foo`, err.Error())

	err = New(rule).ValidateCtx(context.Background(), "other", "my_rule", "my.value")
	require.Error(t, err)
	assert.Equal(t, `"my.value" other error message`, err.Error())
}
