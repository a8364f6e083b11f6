package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gen"
	"gorm.io/gorm"
)

var tables = []string{
	"players",
	"action_executions",
	"feed_entries",
	"player_credentials",
	"rooms",
}

func main() {
	var dsn, out string
	flag.StringVar(&dsn, "dsn", os.Getenv("HEARTHVALE_DB_DSN"), "postgres dsn")
	flag.StringVar(&out, "out", "internal/adapter/repo/gorm/query", "output dir for generated code; models land in ../model")
	flag.Parse()

	if dsn == "" {
		log.Fatal("missing --dsn or HEARTHVALE_DB_DSN")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}

	g := gen.NewGenerator(gen.Config{
		OutPath:      out,
		ModelPkgPath: "model",
		Mode:         gen.WithoutContext,
	})
	g.UseDB(db)
	// jsonb columns stay strings; repos own the encoding.
	g.WithDataTypeMap(map[string]func(gorm.ColumnType) string{
		"jsonb": func(gorm.ColumnType) string { return "string" },
		"bytea": func(gorm.ColumnType) string { return "[]byte" },
	})
	for _, table := range tables {
		g.GenerateModel(table)
	}
	g.Execute()

	fmt.Printf("generated gorm models for %d tables\n", len(tables))
}
