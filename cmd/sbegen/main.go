package main

import (
	"flag"
	"os"

	"github.com/luxfi/sbe/internal/obs"
	"github.com/luxfi/sbe/pkg/codegen"
)

var (
	schemaPath = flag.String("schema", "", "path to the SBE XML schema file")
	outDir     = flag.String("out", "", "directory to write the generated codec into")
	goPackage  = flag.String("package", "", "Go package name for generated code (defaults to the schema's package attribute)")
)

func main() {
	flag.Parse()
	log := obs.New("sbegen")

	if *schemaPath == "" || *outDir == "" {
		log.Error().Msg("both -schema and -out are required")
		flag.Usage()
		os.Exit(2)
	}

	err := codegen.Generate(codegen.Options{
		SchemaPath: *schemaPath,
		OutputDir:  *outDir,
		GoPackage:  *goPackage,
	})
	if err != nil {
		log.Error().Err(err).Msg("generation failed")
		os.Exit(1)
	}

	log.Info().Str("schema", *schemaPath).Str("out", *outDir).Msg("generated codec")
}
