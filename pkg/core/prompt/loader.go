package prompt

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
	"text/template"
)

//go:embed resources
var defaultResources embed.FS

// LoadDefaults registers the prompts embedded in the binary.
func (r *Registry) LoadDefaults() error {
	sub, err := fs.Sub(defaultResources, "resources")
	if err != nil {
		return err
	}
	return r.LoadFromFS(sub)
}

// LoadFromDirectory loads prompts from a directory on disk. Prompts found there replace
// embedded prompts with the same ID.
// Expected structure:
//
//	baseDir/
//	  prompts/
//	    category1/
//	      prompt1.json
func (r *Registry) LoadFromDirectory(baseDir string) error {
	return r.LoadFromFS(os.DirFS(baseDir))
}

// LoadFromFS walks prompts/ inside fsys and registers every .json file.
func (r *Registry) LoadFromFS(fsys fs.FS) error {
	const promptDir = "prompts"
	if _, err := fs.Stat(fsys, promptDir); err != nil {
		return fmt.Errorf("prompts directory not found: %w", err)
	}

	return fs.WalkDir(fsys, promptDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(p) != ".json" {
			return nil
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", p, err)
		}

		var pt PromptTemplate
		if err := json.Unmarshal(data, &pt); err != nil {
			return fmt.Errorf("failed to parse %s: %w", p, err)
		}

		rel := strings.TrimPrefix(p, promptDir+"/")
		if pt.ID == "" {
			pt.ID = generateIDFromPath(rel)
		}
		if pt.Category == "" {
			pt.Category = detectCategory(rel)
		}

		if err := r.Register(&pt); err != nil {
			return fmt.Errorf("failed to register %s: %w", pt.ID, err)
		}
		return nil
	})
}

// generateIDFromPath creates a prompt ID from the file path
// e.g., "scoring/analyze.json" -> "scoring.analyze"
func generateIDFromPath(rel string) string {
	rel = strings.TrimSuffix(rel, ".json")
	return strings.ReplaceAll(rel, "/", ".")
}

// detectCategory extracts the category from the folder structure
func detectCategory(rel string) string {
	parts := strings.Split(rel, "/")
	if len(parts) > 1 {
		return parts[0]
	}
	return "default"
}

var templateFuncs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}

// RenderUserPrompt executes the user prompt template with the given context.
// Variables marked required must be present.
func RenderUserPrompt(pt *PromptTemplate, ctx *PromptExecutionContext) (string, error) {
	if pt.UserPromptTmpl == "" {
		return "", nil
	}

	for _, v := range pt.Variables {
		if _, ok := ctx.Variables[v.Name]; ok {
			continue
		}
		if v.Required {
			return "", fmt.Errorf("prompt %s: missing required variable %s", pt.ID, v.Name)
		}
		ctx.Set(v.Name, v.Default)
	}

	tmpl, err := template.New(pt.ID).Funcs(templateFuncs).Option("missingkey=error").Parse(pt.UserPromptTmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ctx.Variables); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}
