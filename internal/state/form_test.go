package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormSetFieldValueClearsError(t *testing.T) {
	f := NewForm(Values{"email": ""})
	f.SetFieldError("email", "required")
	assert.Equal(t, "required", f.Error("email"))

	f.SetFieldValue("email", "a@b.com")
	assert.Equal(t, "", f.Error("email"))
	assert.Equal(t, "a@b.com", f.String("email"))
}

func TestFormHandlersClearOnlyTheirField(t *testing.T) {
	f := NewForm(Values{"firstName": "", "teamId": nil})
	f.SetFieldError("firstName", "First name is required")
	f.SetFieldError("teamId", "Team is required")

	f.HandleChange(FieldEvent{Name: "firstName", Value: "Ada"})
	assert.Equal(t, map[string]string{"teamId": "Team is required"}, f.Errors())

	f.HandleSelectChange("teamId", int64(3))
	assert.Empty(t, f.Errors())
	assert.Equal(t, int64(3), f.Value("teamId"))
}

func TestFormValidateReplacesErrors(t *testing.T) {
	f := NewForm(Values{"summary": "  ", "email": "nope", "priority": "MEDIUM"})
	f.SetFieldError("unrelated", "stale")

	ok := f.Validate(map[string]Rule{
		"summary":  Required("Summary is required"),
		"email":    Email("Email is required", "Email is invalid"),
		"priority": OneOf("Unknown priority", "CRITICAL", "MAJOR", "MINOR", "BLOCKER", "MEDIUM"),
	})

	assert.False(t, ok)
	assert.Equal(t, map[string]string{
		"summary": "Summary is required",
		"email":   "Email is invalid",
	}, f.Errors(), "fields without a rule are not carried over")

	f.SetFieldValue("summary", "Fix login")
	f.SetFieldValue("email", "ada@example.com")
	assert.True(t, f.Validate(map[string]Rule{
		"summary": Required("Summary is required"),
		"email":   Email("Email is required", "Email is invalid"),
	}))
	assert.Empty(t, f.Errors())
}

func TestFormResetForm(t *testing.T) {
	initial := Values{"name": "alpha"}
	f := NewForm(initial)

	f.SetFieldValue("name", "beta")
	f.SetFieldError("name", "taken")
	f.ResetForm()
	assert.Equal(t, Values{"name": "alpha"}, f.Values())
	assert.Empty(t, f.Errors())

	f.ResetForm(Values{"name": "gamma", "key": "G"})
	assert.Equal(t, Values{"name": "gamma", "key": "G"}, f.Values())

	f.SetFieldValue("name", "delta")
	assert.Equal(t, "alpha", initial["name"], "caller's map is never mutated")
}

func TestFormValuesIsACopy(t *testing.T) {
	f := NewForm(nil)
	v := f.Values()
	v["x"] = 1
	assert.Nil(t, f.Value("x"))
}

func TestRules(t *testing.T) {
	req := Required("r")
	assert.Equal(t, "r", req(nil))
	assert.Equal(t, "r", req(" "))
	assert.Equal(t, "r", req(int64(0)))
	assert.Equal(t, "r", req([]int64{}))
	assert.Equal(t, "", req("x"))
	assert.Equal(t, "", req(int64(2)))

	email := Email("req", "bad")
	assert.Equal(t, "req", email(""))
	assert.Equal(t, "bad", email("a@b"))
	assert.Equal(t, "bad", email("a b@c.d"))
	assert.Equal(t, "", email("a@b.co"))

	one := OneOf("bad", "A", "B")
	assert.Equal(t, "", one(""))
	assert.Equal(t, "", one("a"))
	assert.Equal(t, "bad", one("c"))
}
