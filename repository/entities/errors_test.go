package entities_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reglet-dev/artifactregistry-auth/repository/entities"
)

func TestCredentialAcquisitionError(t *testing.T) {
	t.Parallel()

	cause := errors.New("metadata server unreachable")
	err := fmt.Errorf("apply: %w", &entities.CredentialAcquisitionError{Err: cause})

	assert.ErrorIs(t, err, entities.ErrCredentialAcquisition)
	assert.ErrorIs(t, err, entities.ErrConfiguration)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, entities.ErrURLRewrite)
	assert.Contains(t, err.Error(), "Application Default Credentials")

	var target *entities.CredentialAcquisitionError
	assert.ErrorAs(t, err, &target)
}

func TestURLRewriteError(t *testing.T) {
	t.Parallel()

	err := &entities.URLRewriteError{URL: "artifactregistry:///missing-host", Err: errors.New("missing host")}

	assert.ErrorIs(t, err, entities.ErrURLRewrite)
	assert.ErrorIs(t, err, entities.ErrConfiguration)
	assert.NotErrorIs(t, err, entities.ErrCredentialAcquisition)
	assert.Equal(t, "invalid repository URL artifactregistry:///missing-host: missing host", err.Error())
}
