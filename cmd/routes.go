package main

import (
	"fmt"

	"github.com/go-chi/docgen"
	"github.com/spf13/cobra"

	"github.com/tinoosan/ncnews/internal/httpapi"
	"github.com/tinoosan/ncnews/internal/storage/memory"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print markdown docs for the HTTP routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		api := httpapi.New(memory.New(), appLogger, httpapi.Options{})
		fmt.Println(docgen.MarkdownRoutesDoc(api.Router(), docgen.MarkdownOpts{
			ProjectPath: "github.com/tinoosan/ncnews",
			Intro:       "Routes of the ncnews API. Every `/api` route answers JSON; failures carry `{\"message\": \"<code>: <reason>.\"}`.",
		}))
		return nil
	},
}
