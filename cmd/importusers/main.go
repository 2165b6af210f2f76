// Command importusers tạo user từ một API JSON (mặc định jsonplaceholder).
//
//	importusers [url] [limit]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/vnkhanh/social-blog-backend/config"
	"github.com/vnkhanh/social-blog-backend/services"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("importusers", flag.ContinueOnError)
	timeout := fs.Duration("timeout", 30*time.Second, "HTTP timeout")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: importusers [-timeout 30s] [url] [limit]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	url := services.DefaultImportURL
	limit := services.DefaultImportLimit
	if fs.NArg() > 0 {
		url = fs.Arg(0)
	}
	if fs.NArg() > 1 {
		n, err := strconv.Atoi(fs.Arg(1))
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid limit %q\n", fs.Arg(1))
			return 2
		}
		limit = n
	}

	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, using environment")
	}
	db := config.InitDB(config.Load())

	im := &services.UserImporter{
		DB:     db,
		Client: &http.Client{Timeout: *timeout},
		Out:    os.Stdout,
	}
	n, err := im.Import(context.Background(), url, limit)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("Imported %d users\n", n)
	return 0
}
