package validator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type sampleInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Nickname string `json:"nickname,omitempty" validate:"omitempty,max=10"`
}

func TestValidateStructPasses(t *testing.T) {
	err := ValidateStruct(sampleInput{
		Email:    "reader@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
}

func TestValidateStructReportsJSONNames(t *testing.T) {
	err := ValidateStruct(sampleInput{Email: "not-an-email", Password: "short"})
	require.Error(t, err)

	var failures ValidationErrors
	require.ErrorAs(t, err, &failures)
	require.Len(t, failures, 2)

	require.Equal(t, "email", failures[0].Field)
	require.Equal(t, "email", failures[0].Tag)
	require.Equal(t, "password", failures[1].Field)
	require.Equal(t, "min", failures[1].Tag)
	require.Equal(t, "8", failures[1].Param)

	require.Contains(t, err.Error(), "password failed on min=8")
}

func TestValidateStructOmitemptySkipsBlank(t *testing.T) {
	err := ValidateStruct(sampleInput{
		Email:    "reader@example.com",
		Password: "correct-horse",
		Nickname: "",
	})
	require.NoError(t, err)

	err = ValidateStruct(sampleInput{
		Email:    "reader@example.com",
		Password: "correct-horse",
		Nickname: "way-too-long-nickname",
	})
	require.Error(t, err)
}
