package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasmodels/config"
	"github.com/erraggy/oasmodels/generator"
)

type generateInput struct {
	Spec           specInput          `json:"spec"                      jsonschema:"The OpenAPI document to generate models from"`
	Settings       settingsInput      `json:"settings,omitempty"        jsonschema:"Job settings applied to every schema"`
	Paths          []config.PathEntry `json:"paths,omitempty"           jsonschema:"Operation responses to emit as models: path, method, status and name"`
	OutputDir      string             `json:"output_dir,omitempty"      jsonschema:"Directory to write generated files to"`
	IncludeContent bool               `json:"include_content,omitempty" jsonschema:"Return file contents inline"`
}

type generatedFileInfo struct {
	Schema  string `json:"schema"`
	Name    string `json:"name"`
	Size    int    `json:"size"`
	Content string `json:"content,omitempty"`
}

type generateOutput struct {
	Target       string              `json:"target"`
	OutputDir    string              `json:"output_dir,omitempty"`
	FileCount    int                 `json:"file_count"`
	Files        []generatedFileInfo `json:"files,omitempty"`
	Skipped      []string            `json:"skipped,omitempty"`
	WarningCount int                 `json:"warning_count"`
	Warnings     []string            `json:"warnings,omitempty"`
}

func handleGenerateModels(ctx context.Context, _ *mcp.CallToolRequest, input generateInput) (*mcp.CallToolResult, generateOutput, error) {
	job, err := input.Settings.job("generate_models")
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}
	job.Paths = input.Paths
	job.ApplyDefaults()
	if err := job.Validate(); err != nil {
		return errResult(err), generateOutput{}, nil
	}

	doc, err := input.Spec.load(ctx, job.DeriveOptionalFromRequired)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	result, err := generator.New().GenerateDocument(doc, job)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	if input.OutputDir != "" {
		if err := result.WriteFilesTo(input.OutputDir); err != nil {
			return errResult(fmt.Errorf("failed to write generated files: %w", err)), generateOutput{}, nil
		}
	}

	output := generateOutput{
		Target:       string(result.Target),
		OutputDir:    input.OutputDir,
		FileCount:    len(result.Files),
		Files:        make([]generatedFileInfo, 0, len(result.Files)),
		Skipped:      result.Skipped,
		WarningCount: result.WarningCount,
		Warnings:     issueStrings(result.Issues),
	}
	for i, f := range result.Files {
		info := generatedFileInfo{Schema: f.Schema, Name: f.Path(), Size: len(f.Content)}
		if input.IncludeContent && i < cfg.MaxContentFiles {
			info.Content = string(f.Content)
		}
		output.Files = append(output.Files, info)
	}
	return nil, output, nil
}
