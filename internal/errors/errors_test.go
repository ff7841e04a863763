package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/questforge/questforge/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		code     errors.Code
		message  string
		expected string
	}{
		{
			name:     "not found error",
			code:     errors.CodeNotFound,
			message:  "task not found",
			expected: "NOT_FOUND: task not found",
		},
		{
			name:     "invalid argument error",
			code:     errors.CodeInvalidArgument,
			message:  "invalid input",
			expected: "INVALID_ARGUMENT: invalid input",
		},
		{
			name:     "resource exhausted error",
			code:     errors.CodeResourceExhausted,
			message:  "not enough coins",
			expected: "RESOURCE_EXHAUSTED: not enough coins",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Assert().Equal(tc.expected, err.Error())
			s.Assert().Equal(tc.code, err.Code)
			s.Assert().Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestErrorWithMeta() {
	err := errors.NotFound("task not found").
		WithMeta("task_id", "task_123").
		WithMeta("username", "ada")

	s.Assert().Equal("task_123", err.Meta["task_id"])
	s.Assert().Equal("ada", err.Meta["username"])
}

func (s *ErrorsTestSuite) TestWrapPreservesCode() {
	base := errors.PermissionDenied("only the party leader can add tasks")
	wrapped := errors.Wrap(base, "failed to add party task")

	s.Assert().Equal(errors.CodePermissionDenied, errors.GetCode(wrapped))
	s.Assert().True(errors.IsPermissionDenied(wrapped))
	s.Assert().Equal(base, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapPlainError() {
	plain := fmt.Errorf("dial tcp: connection refused")
	wrapped := errors.Wrap(plain, "failed to persist snapshot")

	s.Assert().Equal(errors.CodeInternal, errors.GetCode(wrapped))
	s.Assert().Equal("failed to persist snapshot", errors.GetMessage(wrapped))
}

func (s *ErrorsTestSuite) TestWrapNil() {
	s.Assert().Nil(errors.Wrap(nil, "no-op"))
}

func (s *ErrorsTestSuite) TestGetCodeOnNil() {
	s.Assert().Equal(errors.CodeOK, errors.GetCode(nil))
}

func (s *ErrorsTestSuite) TestValidationBuilder() {
	vb := errors.NewValidationBuilder()
	s.Assert().NoError(vb.Build())

	vb.RequiredField("Username").InvalidField("Difficulty", "must be easy, medium or hard")
	err := vb.Build()
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))

	var structured *errors.Error
	s.Require().True(errors.As(err, &structured))
	s.Assert().Contains(structured.Meta, "validation_errors")
}
