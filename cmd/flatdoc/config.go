package main

import (
	"fmt"

	"github.com/alecthomas/kingpin/v2"
	"github.com/ehsanranjbar/flatdoc/flatten"
)

type config struct {
	debug                bool
	separator            string
	arrayStart           string
	arrayEnd             string
	preserveEmptyArrays  bool
	preserveEmptyObjects bool
	inferTypes           bool
	maxDepth             int
	keepGoing            bool
	metricsAddr          string
	addr                 string
	dbDir                string
	file                 string
	paths                []string
	expr                 string
	limit                int
	id                   string
}

type commands struct {
	stream *kingpin.CmdClause
	imp    *kingpin.CmdClause
	find   *kingpin.CmdClause
	query  *kingpin.CmdClause
	get    *kingpin.CmdClause
	serve  *kingpin.CmdClause
}

func newApp(c *config) (*kingpin.Application, commands) {
	app := kingpin.New("flatdoc", "Flattens JSON documents read one per line and stores them for lookup by path.")
	app.Version(version)
	app.DefaultEnvars()

	app.Flag("debug", "Enable debug logging.").Short('d').BoolVar(&c.debug)
	app.Flag("separator", "String placed between path segments.").Default(flatten.DefaultSeparator).StringVar(&c.separator)
	app.Flag("array-start", "String written before array indices, requires --array-end.").StringVar(&c.arrayStart)
	app.Flag("array-end", "String written after array indices, requires --array-start.").StringVar(&c.arrayEnd)
	app.Flag("preserve-empty-arrays", "Keep empty arrays as [] values.").BoolVar(&c.preserveEmptyArrays)
	app.Flag("preserve-empty-objects", "Keep empty objects as {} values.").BoolVar(&c.preserveEmptyObjects)
	app.Flag("infer-types", "Convert numeric and boolean strings to numbers and booleans.").BoolVar(&c.inferTypes)
	app.Flag("max-depth", "Maximum nesting depth of documents, 0 for no limit.").Default("0").IntVar(&c.maxDepth)
	app.Flag("keep-going", "Log and skip lines that fail instead of stopping.").BoolVar(&c.keepGoing)

	var cmds commands
	cmds.stream = app.Command("stream", "Flatten documents from stdin to stdout.").Default()
	cmds.stream.Flag("metrics-addr", "Address to serve prometheus metrics on while streaming.").StringVar(&c.metricsAddr)

	cmds.imp = app.Command("import", "Flatten documents and put them into a store, printing their ids.")
	cmds.imp.Flag("db", "Store directory.").Required().StringVar(&c.dbDir)
	cmds.imp.Arg("file", "File to read documents from instead of stdin.").ExistingFileVar(&c.file)

	cmds.find = app.Command("find", "Print the ids of records containing all the given paths.")
	cmds.find.Flag("db", "Store directory.").Required().StringVar(&c.dbDir)
	cmds.find.Arg("path", "Flattened path.").Required().StringsVar(&c.paths)

	cmds.query = app.Command("query", "Print records matching an expression.")
	cmds.query.Flag("db", "Store directory.").Required().StringVar(&c.dbDir)
	cmds.query.Flag("limit", "Maximum number of records, 0 for no limit.").Default("0").IntVar(&c.limit)
	cmds.query.Arg("expr", "Filter expression, e.g. 'address.code > 3000'.").Required().StringVar(&c.expr)

	cmds.get = app.Command("get", "Print a single record.")
	cmds.get.Flag("db", "Store directory.").Required().StringVar(&c.dbDir)
	cmds.get.Arg("id", "Record id.").Required().StringVar(&c.id)

	cmds.serve = app.Command("serve", "Serve a store over HTTP.")
	cmds.serve.Flag("db", "Store directory.").Required().StringVar(&c.dbDir)
	cmds.serve.Flag("addr", "Address to listen on.").Default(":8081").StringVar(&c.addr)

	return app, cmds
}

func (c *config) flattener() (*flatten.Flattener, error) {
	if (c.arrayStart == "") != (c.arrayEnd == "") {
		return nil, fmt.Errorf("--array-start and --array-end must be set together")
	}
	if c.maxDepth < 0 {
		return nil, fmt.Errorf("invalid max depth %d", c.maxDepth)
	}

	f := flatten.New().
		WithSeparator(c.separator).
		WithPreserveEmptyArrays(c.preserveEmptyArrays).
		WithPreserveEmptyObjects(c.preserveEmptyObjects).
		WithMaxDepth(c.maxDepth)
	if c.arrayStart != "" {
		f.WithArrayFormatting(flatten.Surrounded(c.arrayStart, c.arrayEnd))
	}
	if c.inferTypes {
		f.WithInferType()
	}
	return f, nil
}
