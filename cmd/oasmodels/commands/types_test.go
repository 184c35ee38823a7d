package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasmodels/config"
	"github.com/erraggy/oasmodels/internal/testutil"
)

func TestHandleTypesJSON(t *testing.T) {
	path := testutil.WriteTempFile(t, "petstore.yaml", []byte(testutil.PetstoreYAML))

	stdout := captureStdout(t, func() {
		require.NoError(t, HandleTypes([]string{"-prefix", "Api", "-format", "json", path, "Pet"}))
	})

	var out TypesOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, "ApiPet", out.ClassName)
	assert.Equal(t, "dart", out.Target)
	require.Len(t, out.Fields, 9)
	assert.Equal(t, TypedField{JSONKey: "tags", Name: "tags", Type: "Iterable<ApiTag>"}, out.Fields[4])
	assert.Equal(t, TypedField{JSONKey: "owner", Name: "owner", Type: "ApiOwner", Nullable: true}, out.Fields[5])
	assert.Equal(t, []TypedEnum{{Name: "ApiPetStatus", Values: []string{"available", "sold"}}}, out.Enums)
}

func TestHandleTypesText(t *testing.T) {
	path := testutil.WriteTempFile(t, "petstore.yaml", []byte(testutil.PetstoreYAML))

	stdout := captureStdout(t, func() {
		require.NoError(t, HandleTypes([]string{"-t", "go", path, "Pet"}))
	})
	assert.Contains(t, stdout, "Pet -> Pet (go)")
	assert.Contains(t, stdout, "time.Time")
	assert.Contains(t, stdout, "Owner?")
	assert.Contains(t, stdout, "enum PetStatus: [available sold]")
}

func TestHandleTypesWithJob(t *testing.T) {
	dir := t.TempDir()
	jobPath := filepath.Join(dir, "job.yaml")
	require.NoError(t, os.WriteFile(jobPath, []byte(`source: ignored.yaml
default:
  classNamePrefix: Api
  typeCorrections: {"ApiPet.id": "String"}
  nullabilityCorrections: {"ApiPet.owner": false}
`), 0o600))
	path := testutil.WriteTempFile(t, "petstore.yaml", []byte(testutil.PetstoreYAML))

	stdout := captureStdout(t, func() {
		require.NoError(t, HandleTypes([]string{"-job", jobPath, "-format", "json", path, "Pet"}))
	})

	var out TypesOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, "String", out.Fields[0].Type)
	assert.False(t, out.Fields[5].Nullable)
}

func TestTypesJob(t *testing.T) {
	job, err := typesJob("api.yaml", &TypesFlags{Target: "GO", ClassNamePrefix: "X"})
	require.NoError(t, err)
	assert.Equal(t, config.TargetGo, job.Target)
	assert.Equal(t, config.DefaultGoPackage, job.Package)
	assert.Equal(t, "X", job.Default.ClassNamePrefix)
	assert.Equal(t, "api.yaml", job.Source)

	_, err = typesJob("api.yaml", &TypesFlags{Target: "rust"})
	assert.Error(t, err)
}

func TestHandleTypesErrors(t *testing.T) {
	path := testutil.WriteTempFile(t, "petstore.yaml", []byte(testutil.PetstoreYAML))

	tests := []struct {
		name string
		args []string
	}{
		{"missing schema argument", []string{path}},
		{"unknown schema", []string{path, "Missing"}},
		{"primitive schema", []string{path, "Color"}},
		{"bad target", []string{"-t", "rust", path, "Pet"}},
		{"bad job file", []string{"-job", path + ".missing", path, "Pet"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captureStdout(t, func() {
				assert.Error(t, HandleTypes(tt.args))
			})
		})
	}
}
