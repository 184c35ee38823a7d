package generator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasmodels/config"
	"github.com/erraggy/oasmodels/internal/testutil"
	"github.com/erraggy/oasmodels/oaserrors"
	"github.com/erraggy/oasmodels/parser"
)

func petstoreJob(target config.Target) *config.Job {
	job := &config.Job{
		Name:   "petstore",
		Source: "petstore.yaml",
		Target: target,
		Default: config.Settings{
			ClassNamePrefix: "Api",
			ImportPrefix:    "my_app/models",
			OutputDirectory: "lib/models",
		},
	}
	job.ApplyDefaults()
	return job
}

func generatePetstore(t *testing.T, job *config.Job) *Result {
	t.Helper()
	doc := testutil.ParseYAML(t, testutil.PetstoreYAML)
	result, err := New().GenerateDocument(doc, job)
	require.NoError(t, err)
	return result
}

func fileNames(r *Result) []string {
	names := make([]string, 0, len(r.Files))
	for _, f := range r.Files {
		names = append(names, f.Name)
	}
	return names
}

func TestGenerateDocumentDart(t *testing.T) {
	result := generatePetstore(t, petstoreJob(config.TargetDart))

	assert.Equal(t, "petstore", result.Job)
	assert.Equal(t, config.TargetDart, result.Target)
	assert.Equal(t, "3.0.3", result.SourceVersion)
	assert.Equal(t, []string{
		"entity.dart", "named.dart", "pet.dart", "tag.dart", "category.dart", "owner.dart",
	}, fileNames(result), "one file per object schema, in document order")

	require.Equal(t, 1, result.WarningCount)
	assert.Contains(t, result.Issues[0].Message, "Schema Empty had no data")
	assert.True(t, result.HasWarnings())

	tag := result.GetFile("Tag")
	require.NotNil(t, tag)
	assert.Equal(t, filepath.Join("lib/models", "tag.dart"), tag.Path())
	assert.Equal(t, `import 'package:json_annotation/json_annotation.dart';

part 'tag.g.dart';

@JsonSerializable()
class ApiTag {
  @JsonKey(name: 'label')
  final String label;

  const ApiTag({
    required this.label,
  });

  factory ApiTag.fromJson(Map<String, dynamic> json) => _$ApiTagFromJson(json);

  Map<String, dynamic> toJson() => _$ApiTagToJson(this);
}
`, string(tag.Content))
}

func TestGenerateDocumentDartPet(t *testing.T) {
	result := generatePetstore(t, petstoreJob(config.TargetDart))
	pet := result.GetFile("Pet")
	require.NotNil(t, pet)
	src := string(pet.Content)

	expected := []string{
		"import 'package:my_app/models/category.dart';\n" +
			"import 'package:my_app/models/owner.dart';\n" +
			"import 'package:my_app/models/tag.dart';\n",
		"part 'pet.g.dart';",
		"class ApiPet {",
		"  final int id;",
		"  final DateTime createdAt;",
		"  final String name;",
		"  final ApiPetStatus status;",
		"  final Iterable<ApiTag> tags;",
		"  @JsonKey(name: 'owner')\n  final ApiOwner? owner;",
		"  final ApiCategory category;",
		"  final Map<String, dynamic> attributes;",
		"  final dynamic extra;",
		"    required this.id,",
		"    this.owner,",
		"enum ApiPetStatus {\n  available,\n  sold,\n}",
	}
	for _, want := range expected {
		assert.Contains(t, src, want)
	}
	assert.NotContains(t, src, "pet.dart'", "a model never imports itself")
	assert.Equal(t, 1, strings.Count(src, "final int id;"), "first declaration wins")
}

func TestGenerateDocumentGo(t *testing.T) {
	result := generatePetstore(t, petstoreJob(config.TargetGo))
	assert.Equal(t, "pet.go", result.Files[2].Name)

	pet := result.GetFile("Pet")
	require.NotNil(t, pet)
	src := string(pet.Content)

	assert.Contains(t, src, "// Code generated by oasmodels. DO NOT EDIT.")
	assert.Contains(t, src, "package models")
	assert.Contains(t, src, `import "time"`)
	assert.Contains(t, src, "type ApiPet struct {")
	assert.Regexp(t, `CreatedAt\s+time\.Time\s+`+"`json:\"createdAt\"`", src)
	assert.Regexp(t, `Owner\s+\*ApiOwner\s+`+"`json:\"owner,omitempty\"`", src)
	assert.Regexp(t, `Tags\s+\[\]ApiTag\s+`, src)
	assert.Regexp(t, `Attributes\s+map\[string\]any\s+`, src)
	assert.Contains(t, src, "type ApiPetStatus string")
	assert.Regexp(t, `ApiPetStatusAvailable\s+ApiPetStatus = "available"`, src)
	assert.Empty(t, result.Issues[1:], "go output is formatted without warnings")
}

func TestGenerateDocumentSkipsIgnored(t *testing.T) {
	job := petstoreJob(config.TargetDart)
	job.Schemas = map[string]config.Settings{
		"owner": {Ignore: true},
		"Tag":   {OutputDirectory: "lib/tags", ClassNamePrefix: "Shop"},
	}
	result := generatePetstore(t, job)

	assert.Equal(t, []string{"Owner"}, result.Skipped)
	assert.Nil(t, result.GetFile("Owner"))

	tag := result.GetFile("Tag")
	require.NotNil(t, tag)
	assert.Equal(t, "lib/tags", tag.Dir)
	assert.Contains(t, string(tag.Content), "class ShopTag {")

	pet := result.GetFile("Pet")
	require.NotNil(t, pet)
	assert.Contains(t, string(pet.Content), "final Iterable<ShopTag> tags;")
	assert.Contains(t, string(pet.Content), "final ApiOwner? owner;", "ignored schemas can still be referenced")
}

func TestGenerateDocumentCorrections(t *testing.T) {
	job := petstoreJob(config.TargetDart)
	job.Default.TypeCorrections = map[config.PropertyKey]string{
		{Class: "ApiPet", Property: "status"}: "String",
		{Class: "ApiOwner", Property: "links"}: "ApiLinks",
	}
	job.Default.NullabilityCorrections = map[config.PropertyKey]bool{
		{Class: "ApiPet", Property: "owner"}: false,
		{Class: "ApiPet", Property: "name"}:  true,
	}
	result := generatePetstore(t, job)

	pet := string(result.GetFile("Pet").Content)
	assert.Contains(t, pet, "final String status;")
	assert.NotContains(t, pet, "enum ApiPetStatus", "corrected properties need no enum")
	assert.Contains(t, pet, "final ApiOwner owner;")
	assert.Contains(t, pet, "final String? name;")

	owner := string(result.GetFile("Owner").Content)
	assert.Contains(t, owner, "@JsonKey(name: '_links')\n  final ApiLinks links;")
}

func TestGenerateDocumentPaths(t *testing.T) {
	job := petstoreJob(config.TargetDart)
	job.Paths = []config.PathEntry{
		{Path: "/pets/{id}", Method: "get", Status: "200", Name: "PetResponse"},
		{Path: "/pets/{id}", Method: "delete", Status: "204", Name: "Deleted"},
	}
	result := generatePetstore(t, job)

	response := result.GetFile("PetResponse")
	require.NotNil(t, response)
	assert.Equal(t, "pet_response.dart", response.Name)
	src := string(response.Content)
	assert.Contains(t, src, "class ApiPetResponse {")
	assert.Contains(t, src, "import 'package:my_app/models/pet.dart';")
	assert.Contains(t, src, "final ApiPet pet;")
	assert.Contains(t, src, "final String requestId;")

	require.Equal(t, 2, result.WarningCount)
	assert.Equal(t, "paths[1]", result.Issues[1].Path)
	assert.Contains(t, result.Issues[1].Message, "no JSON response schema")
}

func TestGenerateDocumentFatalErrors(t *testing.T) {
	tests := []struct {
		name     string
		document string
		sentinel error
	}{
		{
			name: "dangling property reference",
			document: `
openapi: 3.0.0
components:
  schemas:
    A:
      type: object
      properties:
        b: {$ref: '#/components/schemas/Missing'}
`,
			sentinel: oaserrors.ErrReference,
		},
		{
			name: "composition with own properties",
			document: `
openapi: 3.0.0
components:
  schemas:
    Base: {type: object, properties: {id: {type: string}}}
    A:
      allOf: [{$ref: '#/components/schemas/Base'}]
      properties:
        extra: {type: string}
`,
			sentinel: oaserrors.ErrComposition,
		},
		{
			name: "unknown type",
			document: `
openapi: 3.0.0
components:
  schemas:
    A:
      type: object
      properties:
        big: {type: int128}
`,
			sentinel: oaserrors.ErrType,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := testutil.ParseYAML(t, tt.document)
			_, err := New().GenerateDocument(doc, petstoreJob(config.TargetDart))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.sentinel), err.Error())
			assert.Contains(t, err.Error(), "job petstore")
		})
	}
}

const aliasYAML = `
openapi: 3.0.3
components:
  schemas:
    Identifier:
      type: string
    UserId:
      $ref: '#/components/schemas/Identifier'
    Labels:
      type: array
      items: {type: string}
    UserLabels:
      $ref: '#/components/schemas/Labels'
    User:
      type: object
      properties:
        id:
          $ref: '#/components/schemas/UserId'
        labels:
          $ref: '#/components/schemas/UserLabels'
        mode:
          type: string
          enum: []
`

func TestGenerateDocumentReferenceAliases(t *testing.T) {
	tests := []struct {
		target   config.Target
		expected []string
	}{
		{config.TargetDart, []string{`  final String id;`, `  final Iterable<String> labels;`, `  final String mode;`}},
		{config.TargetGo, []string{`Id\s+string\s+`, `Labels\s+\[\]string\s+`, `Mode\s+string\s+`}},
	}
	for _, tt := range tests {
		t.Run(string(tt.target), func(t *testing.T) {
			doc := testutil.ParseYAML(t, aliasYAML)
			job := &config.Job{
				Name:    "aliases",
				Source:  "aliases.yaml",
				Target:  tt.target,
				Default: config.Settings{ImportPrefix: "my_app/models"},
			}
			job.ApplyDefaults()

			result, err := New().GenerateDocument(doc, job)
			require.NoError(t, err)
			assert.Empty(t, result.Issues)
			require.Len(t, result.Files, 1, "aliases of primitives and arrays are not emitted")

			src := string(result.GetFile("User").Content)
			for _, want := range tt.expected {
				assert.Regexp(t, want, src)
			}
			assert.NotContains(t, src, "user_id")
			assert.NotContains(t, src, "UserId")
			assert.NotContains(t, src, "enum ")
			assert.NotContains(t, src, "UserMode")
		})
	}
}

func TestGenerateDocumentDeterministic(t *testing.T) {
	first := generatePetstore(t, petstoreJob(config.TargetDart))
	second := generatePetstore(t, petstoreJob(config.TargetDart))
	assert.Equal(t, first.Files, second.Files)
}

func TestGenerateJobFromFile(t *testing.T) {
	path := testutil.WriteTempFile(t, "petstore.yaml", []byte(testutil.PetstoreYAML))
	job := &config.Job{
		Name:   "file",
		Source: path,
		Target: "GO",
		Paths:  []config.PathEntry{{Path: "/pets/{id}", Method: "GET", Status: "200", Name: "PetResponse"}},
	}

	result, err := New().GenerateJob(context.Background(), job)
	require.NoError(t, err)
	assert.Equal(t, config.TargetGo, result.Target, "defaults are applied")
	assert.Equal(t, config.Target("GO"), job.Target, "the caller's job is left untouched")
	assert.Empty(t, job.Package)
	assert.Equal(t, "GET", job.Paths[0].Method)
	assert.Len(t, result.Files, 7)
	assert.Equal(t, "Petstore", result.Title)

	_, err = New().GenerateJob(context.Background(), &config.Job{Name: "bad"})
	assert.True(t, errors.Is(err, oaserrors.ErrConfig))
}

func TestWriteFiles(t *testing.T) {
	result := generatePetstore(t, petstoreJob(config.TargetDart))
	root := t.TempDir()
	require.NoError(t, result.WriteFilesTo(root))

	data, err := os.ReadFile(filepath.Join(root, "lib", "models", "pet.dart"))
	require.NoError(t, err)
	assert.Equal(t, result.GetFile("Pet").Content, data)

	info, err := os.Stat(filepath.Join(root, "lib", "models", "tag.dart"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	bad := &Result{Files: []GeneratedFile{{Name: "../escape.dart"}}}
	assert.Error(t, bad.WriteFilesTo(root))
}

func TestRunJobs(t *testing.T) {
	path := testutil.WriteTempFile(t, "petstore.yaml", []byte(testutil.PetstoreYAML))
	jobs := []*config.Job{
		{Name: "ok", Source: path},
		{Name: "missing", Source: filepath.Join(t.TempDir(), "missing.yaml")},
		{Name: "go", Source: path, Target: config.TargetGo},
	}

	g := New()
	g.Workers = 2
	results := g.RunJobs(context.Background(), jobs)
	require.Len(t, results, 3)

	assert.NoError(t, results[0].Err)
	assert.Len(t, results[0].Result.Files, 6)
	assert.Error(t, results[1].Err, "a failing job keeps its own error")
	assert.NoError(t, results[2].Err, "siblings of a failing job still run")
	assert.Equal(t, "pet.go", results[2].Result.Files[2].Name)

	failed := Failed(results)
	require.Len(t, failed, 1)
	assert.Equal(t, "missing", failed[0].Job.Name)
}

func TestRunJobsCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results := New().RunJobs(ctx, []*config.Job{{Name: "a", Source: "a.yaml"}})
	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Err, context.Canceled)
}

func TestGeneratorLogsProgress(t *testing.T) {
	logger := &recordingLogger{}
	g := New()
	g.Logger = logger
	job := petstoreJob(config.TargetDart)
	job.Schemas = map[string]config.Settings{"Owner": {Ignore: true}}

	doc := testutil.ParseYAML(t, testutil.PetstoreYAML)
	_, err := g.GenerateDocument(doc, job)
	require.NoError(t, err)

	assert.Contains(t, logger.messages, "Converting Pet...")
	assert.Contains(t, logger.messages, "Skipped Owner")
	assert.Contains(t, logger.messages, "Schema Empty had no data")
}

type recordingLogger struct {
	parser.NopLogger
	messages []string
}

func (l *recordingLogger) Info(msg string, _ ...any) { l.messages = append(l.messages, msg) }
func (l *recordingLogger) Warn(msg string, _ ...any) { l.messages = append(l.messages, msg) }
func (l *recordingLogger) With(_ ...any) parser.Logger {
	return l
}
