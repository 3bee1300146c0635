package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDisposableEmailDomain(t *testing.T) {
	assert.True(t, IsDisposableEmailDomain("test@tempmail.com"))
	assert.True(t, IsDisposableEmailDomain("someone@mailinator.com"))
	assert.True(t, IsDisposableEmailDomain("UPPER@YOPMAIL.COM"))
	assert.False(t, IsDisposableEmailDomain("test@gmail.com"))
	assert.False(t, IsDisposableEmailDomain("seller@mnasmart.com"))
	assert.False(t, IsDisposableEmailDomain("not-an-email"))
	// Only the domain is matched, not substrings of the local part.
	assert.False(t, IsDisposableEmailDomain("tempmail.com@gmail.com"))
}
