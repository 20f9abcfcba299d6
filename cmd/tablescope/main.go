package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"

	"github.com/suparena/tablescope"
	"github.com/suparena/tablescope/profile"
	"github.com/suparena/tablescope/querymodels"
)

var (
	versionFlag = flag.Bool("version", false, "Show version information")
	vFlag       = flag.Bool("v", false, "Show version information (short)")

	profilesPath = flag.String("profiles", "profiles.yaml", "Path to the profiles file")
	profileName  = flag.String("profile", "", "Profile name (defaults to the file's default)")

	tablesFlag = flag.Bool("tables", false, "List tables and exit")
	tableName  = flag.String("table", "", "Table to read")
	indexName  = flag.String("index", "", "Secondary index to read")

	pkName = flag.String("pk-name", "PK", "Partition key attribute name")
	pkVal  = flag.String("pk", "", "Partition key value (empty runs a scan)")
	skName = flag.String("sk-name", "SK", "Sort key attribute name")
	skOp = flag.String("sk-op", "equals",
		"Sort key operator: equals, begins-with, between, less-than, less-or-equal, greater-than, greater-or-equal")
	skVal  = flag.String("sk", "", "Sort key value")
	skVal2 = flag.String("sk2", "", "Sort key upper bound (between only)")

	maxResults = flag.Int("max", 0, "Stop after roughly this many items (0 reads everything)")
)

func main() {
	// Parse flags early to catch version flag
	flag.Parse()

	// Handle version flag
	if *versionFlag || *vFlag {
		info := tablescope.GetVersionInfo()
		fmt.Printf("TableScope version %s\n", info.Version)
		fmt.Printf("Git commit: %s\n", info.GitCommit)
		fmt.Printf("Build date: %s\n", info.BuildDate)
		fmt.Printf("Go version: %s\n", info.GoVersion)
		os.Exit(0)
	}

	if err := run(context.Background()); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context) error {
	profile.LoadDotenv()

	prof, file := resolveProfile()
	sessions := tablescope.NewSessionManager()
	session, err := sessions.Open(ctx, prof)
	if err != nil {
		return err
	}

	prof.Touch()
	if file != nil {
		if err := file.Save(*profilesPath); err != nil {
			log.Printf("could not record profile use: %v", err)
		}
	}

	if *tablesFlag {
		names, err := session.Store.ListTables(ctx)
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	}

	if *tableName == "" {
		return fmt.Errorf("either -tables or -table is required")
	}
	return read(ctx, session)
}

// resolveProfile loads the profiles file when present and falls back to a
// pure-environment profile when it is not.
func resolveProfile() (*profile.Profile, *profile.File) {
	file, err := profile.Load(*profilesPath)
	if err != nil {
		prof := &profile.Profile{Name: "env"}
		prof.MergeEnv()
		return prof, nil
	}

	prof, err := file.Lookup(*profileName)
	if err != nil {
		log.Fatal(err)
	}
	prof.MergeEnv()
	return prof, file
}

func read(ctx context.Context, session *tablescope.Session) error {
	progress := make(chan querymodels.QueryProgress, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range progress {
			if ev.IsComplete {
				continue
			}
			log.Printf("fetched %d items (%d scanned, %dms)", ev.Count, ev.ScannedCount, ev.ElapsedMs)
		}
	}()

	result, err := execute(ctx, session, progress)
	close(progress)
	<-done
	if err != nil {
		return err
	}

	for _, item := range result.Items {
		var decoded map[string]any
		if err := attributevalue.UnmarshalMap(item, &decoded); err != nil {
			return fmt.Errorf("failed to decode item: %w", err)
		}
		line, err := json.Marshal(decoded)
		if err != nil {
			return fmt.Errorf("failed to encode item: %w", err)
		}
		fmt.Println(string(line))
	}

	log.Printf("%d items in %dms", result.Count, result.ElapsedMs)
	if result.LastEvaluatedKey != nil {
		log.Printf("more items remain past the result target")
	}
	return nil
}

func execute(ctx context.Context, session *tablescope.Session,
	progress chan querymodels.QueryProgress) (*querymodels.BatchQueryResult, error) {

	var index *string
	if *indexName != "" {
		index = aws.String(*indexName)
	}

	if *pkVal == "" {
		desc := &querymodels.ScanDescription{
			TableName: *tableName,
			IndexName: index,
		}
		return session.Exec.Scan(ctx, desc, *maxResults, progress)
	}

	desc := &querymodels.QueryDescription{
		TableName: *tableName,
		IndexName: index,
		KeyCondition: querymodels.KeyCondition{
			PartitionKey: querymodels.KeyAttribute{Name: *pkName, Value: *pkVal},
		},
	}
	if *skVal != "" {
		desc.KeyCondition.SortKey = &querymodels.SortKeyCondition{
			Name:     *skName,
			Operator: querymodels.SortKeyOperator(*skOp),
			Value:    *skVal,
			Value2:   *skVal2,
		}
	}
	return session.Exec.Query(ctx, desc, *maxResults, progress)
}
