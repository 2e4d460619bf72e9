package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bordonalmed/REVELA-sub000/core"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("test content")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Marshal
			data := MarshalID(tt.id)
			require.NotNil(t, data)
			require.NotEmpty(t, data)

			// Unmarshal
			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	assert.Error(t, err)
}

func TestMarshalUnmarshalProject(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	tests := []struct {
		name    string
		project *core.Project
	}{
		{
			name: "minimal project",
			project: &core.Project{
				Id:        core.ID(1),
				Name:      "Knee rehab",
				Date:      "2026-03-14",
				CreatedAt: now,
				UpdatedAt: now,
			},
		},
		{
			name: "project with images and notes",
			project: &core.Project{
				Id:           core.ID(2),
				Name:         "Shoulder rehab",
				Date:         "2026-04-01",
				BeforeImages: []string{"data:image/jpeg;base64,AAAA", "data:image/jpeg;base64,BBBB"},
				AfterImages:  []string{"data:image/jpeg;base64,CCCC"},
				Notes:        "Six weeks apart",
				FolderId:     core.ID(9),
				CreatedAt:    now,
				UpdatedAt:    now,
			},
		},
		{
			name: "project with measurements",
			project: &core.Project{
				Id:           core.ID(3),
				Name:         "Scar revision",
				BeforeImages: []string{"data:image/jpeg;base64,AAAA"},
				Measurements: []core.Measurement{
					{
						Kind:       core.ImageBefore,
						ImageIndex: 0,
						StartX:     10.5,
						StartY:     20.25,
						EndX:       110.5,
						EndY:       20.25,
						Scale:      0.26,
						Unit:       "mm",
						Length:     26.0,
						Label:      "scar width",
					},
				},
				CreatedAt: now,
				UpdatedAt: now,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalProject(tt.project)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalProject(data)
			require.NoError(t, err)
			assert.Equal(t, tt.project, decoded)
		})
	}
}

func TestUnmarshalProject_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty data", []byte{}},
		{"truncated data", MarshalProject(&core.Project{Id: 1, Name: "x"})[:2]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalProject(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestMarshalUnmarshalFolder(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	folder := &core.Folder{
		Id:        core.ID(7),
		Name:      "Post-op",
		CreatedAt: now,
		UpdatedAt: now,
	}

	data := MarshalFolder(folder)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalFolder(data)
	require.NoError(t, err)
	assert.Equal(t, folder, decoded)
}
