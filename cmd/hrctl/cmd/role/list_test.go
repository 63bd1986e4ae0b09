package role

import (
	"bytes"
	"strings"
	"testing"

	"github.com/SoloCapybara/HRMS-NEXT/pkg/sdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteRoles(t *testing.T) {
	var buf bytes.Buffer
	writeRoles(&buf, []sdk.Role{
		{ID: 1, Name: "超级管理员", IsSystem: true},
		{ID: 2, Name: "HR专员", Permissions: []sdk.Permission{{Name: "人事管理"}, {Name: "公告管理"}}, Description: "人事"},
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "yes")
	assert.Contains(t, lines[2], "HR专员")
	assert.Contains(t, lines[2], "2")
}
