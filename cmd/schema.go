package cmd

import (
	"context"
	"fmt"
	"os"

	"mini-orm/core/orm"
	"mini-orm/core/schema"
	"mini-orm/feature/hr"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// schemaCmd prints what the engine discovered for every HR set.
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the discovered HR tables as YAML",
	RunE:  runSchema,
}

func init() {
	RootCmd.AddCommand(schemaCmd)
}

type fieldDoc struct {
	schema.FieldInfo `yaml:",inline"`
	Type             string `yaml:"type"`
}

type setDoc struct {
	Set    string        `yaml:"set"`
	Table  *schema.Table `yaml:"table"`
	Join   bool          `yaml:"join,omitempty"`
	Fields []fieldDoc    `yaml:"fields"`
}

func describe[T any](s *orm.Set[T]) setDoc {
	doc := setDoc{Set: s.Name(), Table: s.Table(), Join: s.Mapping().Join}
	for _, info := range s.Mapping().Infos() {
		doc.Fields = append(doc.Fields, fieldDoc{FieldInfo: info, Type: info.Type.String()})
	}
	return doc
}

func runSchema(cmd *cobra.Command, args []string) error {
	cfg, l, err := setup()
	if err != nil {
		return err
	}
	defer l.Sync()

	c, err := hr.Open(context.Background(), cfg.Database, orm.WithLogger(l))
	if err != nil {
		return fmt.Errorf("failed to open hr context: %w", err)
	}
	defer c.Close()

	docs := []setDoc{
		describe(c.Departments),
		describe(c.Employees),
		describe(c.Projects),
		describe(c.EmployeesProjects),
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(docs)
}
