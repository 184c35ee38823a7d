package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasmodels/internal/testutil"
)

// writePetstoreJob writes the petstore document and a job file pointing at it
// into a temporary directory and returns the job file path.
func writePetstoreJob(t *testing.T, extra string) string {
	t.Helper()
	dir := t.TempDir()
	source := filepath.Join(dir, "petstore.yaml")
	require.NoError(t, os.WriteFile(source, []byte(testutil.PetstoreYAML), 0o600))

	job := "source: " + source + "\n" +
		"default:\n" +
		"  classNamePrefix: Api\n" +
		"  importPrefix: my_app/models\n" +
		"  outputDirectory: lib/models\n" + extra
	jobPath := filepath.Join(dir, "jobs", "petstore.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(jobPath), 0o755))
	require.NoError(t, os.WriteFile(jobPath, []byte(job), 0o600))
	return jobPath
}

func TestSetupGenerateFlags(t *testing.T) {
	fs, flags := SetupGenerateFlags()

	assert.Empty(t, flags.Output)
	assert.Zero(t, flags.Workers)
	assert.False(t, flags.DryRun)
	assert.False(t, flags.Strict)

	require.NoError(t, fs.Parse([]string{"-o", "./app", "-j", "2", "--dry-run", "--strict", "-v", "jobs/a.yaml"}))
	assert.Equal(t, "./app", flags.Output)
	assert.Equal(t, 2, flags.Workers)
	assert.True(t, flags.DryRun)
	assert.True(t, flags.Strict)
	assert.True(t, flags.Verbose)
	assert.Equal(t, []string{"jobs/a.yaml"}, fs.Args())
}

func TestHandleGenerate(t *testing.T) {
	jobPath := writePetstoreJob(t, "")
	out := t.TempDir()

	stdout := captureStdout(t, func() {
		require.NoError(t, HandleGenerate([]string{"-o", out, jobPath}))
	})
	assert.Contains(t, stdout, "petstore: Wrote 6 files (dart)")
	assert.Contains(t, stdout, "1 warning")

	data, err := os.ReadFile(filepath.Join(out, "lib", "models", "pet.dart"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "class ApiPet {")
}

func TestHandleGenerateDirectory(t *testing.T) {
	jobPath := writePetstoreJob(t, "target: go\n")
	out := t.TempDir()

	captureStdout(t, func() {
		require.NoError(t, HandleGenerate([]string{"-o", out, filepath.Dir(jobPath)}))
	})
	_, err := os.Stat(filepath.Join(out, "lib", "models", "pet.go"))
	assert.NoError(t, err)
}

func TestHandleGenerateDryRun(t *testing.T) {
	jobPath := writePetstoreJob(t, "")
	out := t.TempDir()

	stdout := captureStdout(t, func() {
		require.NoError(t, HandleGenerate([]string{"--dry-run", "-o", out, jobPath}))
	})
	assert.Contains(t, stdout, "Would write 6 files (dart)")
	assert.Contains(t, stdout, filepath.Join(out, "lib", "models", "tag.dart"))

	_, err := os.Stat(filepath.Join(out, "lib"))
	assert.True(t, os.IsNotExist(err), "dry run writes nothing")
}

func TestHandleGenerateStrict(t *testing.T) {
	jobPath := writePetstoreJob(t, "")

	captureStdout(t, func() {
		err := HandleGenerate([]string{"--strict", "--dry-run", jobPath})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 of 1 job failed")
	})
}

func TestHandleGenerateErrors(t *testing.T) {
	dir := t.TempDir()
	badJob := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(badJob, []byte("source: missing.yaml\ntarget: rust\n"), 0o600))
	missingSource := filepath.Join(dir, "missing-source.yaml")
	require.NoError(t, os.WriteFile(missingSource, []byte("source: "+filepath.Join(dir, "nope.yaml")+"\n"), 0o600))

	tests := []struct {
		name string
		args []string
	}{
		{"no such job file", []string{filepath.Join(dir, "nope.yaml")}},
		{"invalid job", []string{badJob}},
		{"missing source", []string{missingSource}},
		{"unknown flag", []string{"--bogus"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captureStdout(t, func() {
				assert.Error(t, HandleGenerate(tt.args))
			})
		})
	}
}

func TestLoadJobs(t *testing.T) {
	jobPath := writePetstoreJob(t, "")

	jobs, err := LoadJobs([]string{jobPath, filepath.Dir(jobPath)})
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "petstore", jobs[0].Name)

	_, err = LoadJobs([]string{t.TempDir()})
	assert.Error(t, err, "a directory without job files")
}
