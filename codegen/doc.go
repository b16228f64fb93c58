// Package codegen turns files into Go source that embeds them compressed.
//
// A Generator reads each Resource relative to its base directory, validates it, compresses it
// with the selected algorithm and renders a gofmt-formatted Go file. For every resource the file
// declares one string constant holding the stored bytes and one package-level variable holding a
// lazily decompressing cell from the embedflate runtime package:
//
//	gen, err := codegen.NewGenerator(
//	    codegen.WithBaseDir("static"),
//	    codegen.WithLogger(logrus.StandardLogger()),
//	)
//	if err != nil {
//	    return err
//	}
//
//	index, _ := codegen.ParseResource("Index:str=index.html@zstd?less_than_original")
//	src, err := gen.Generate("assets", []codegen.Resource{index})
//
// # Resource Specs
//
// Resources are written as
//
//	Name[:bytes|:str]=path[@algorithm][?condition]
//
// where the algorithm is one of none, deflate or zstd and the condition is one of always,
// less_than_original or ratio>N (space savings above N percent). When the condition does not
// hold the resource is stored uncompressed.
//
// # Determinism
//
// Output depends only on the package name, the resource list, the file contents and the
// configuration. It carries no timestamps or absolute paths, so generated files can be checked
// in and verified with CheckFile.
package codegen
