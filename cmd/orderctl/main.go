// orderctl talks to a running order endpoint: connection test, image upload
// and order submission from a JSON file.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/fekuna/perfume-order-service/client/form"
	"github.com/fekuna/perfume-order-service/client/submission"
	"github.com/fekuna/perfume-order-service/client/upload"
	"github.com/fekuna/perfume-order-service/config"
	"github.com/fekuna/perfume-order-service/internal/model"
	"github.com/fekuna/perfume-order-service/internal/pricing"
	"github.com/fekuna/perfume-order-service/pkg/i18n"
	"github.com/fekuna/perfume-order-service/pkg/logger"
	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"
)

// orderFile is the JSON accepted by "orderctl submit".
type orderFile struct {
	Category model.Category         `json:"orderType"`
	Order    model.Order            `json:"order"`
	Favorite *model.FavoriteProfile `json:"favoriteInfo"`
}

func main() {
	_ = godotenv.Load()
	cfg, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	flags := flag.NewFlagSet("orderctl", flag.ExitOnError)
	endpoint := flags.String("endpoint", cfg.Client.OrderEndpoint, "order endpoint URL")
	lang := flags.String("lang", cfg.Client.Language, "message language")
	timeout := flags.Duration("timeout", cfg.Client.Timeout, "request timeout")
	verbose := flags.BoolP("verbose", "v", false, "log requests")
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: orderctl [flags] ping | upload <image>... | submit <order.json>")
		flags.PrintDefaults()
	}
	_ = flags.Parse(os.Args[1:])

	args := flags.Args()
	if len(args) == 0 {
		flags.Usage()
		os.Exit(2)
	}

	log := logger.NewNop()
	if *verbose {
		log = logger.NewZapLogger(&logger.ZapLoggerConfig{IsDevelopment: true, Encoding: "console", Level: "debug"})
		defer log.Sync()
	}

	tr, err := i18n.New(cfg.I18n.DefaultLanguage)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	table := pricing.Table{
		PriceSmall:            cfg.Order.PriceSmall,
		PriceLarge:            cfg.Order.PriceLarge,
		FreeShippingThreshold: cfg.Order.FreeShippingThreshold,
		ShippingFee:           cfg.Order.ShippingFee,
	}
	client := submission.NewClient(submission.Config{
		Endpoint: *endpoint,
		Timeout:  *timeout,
		Language: *lang,
	}, table, tr, log)

	ctx := context.Background()
	var ok bool
	switch args[0] {
	case "ping":
		res := client.Ping(ctx)
		fmt.Println(res.Message)
		ok = res.Success

	case "upload":
		ok = runUpload(ctx, cfg, tr, *lang, log, args[1:])

	case "submit":
		if len(args) != 2 {
			flags.Usage()
			os.Exit(2)
		}
		ok = runSubmit(ctx, client, table, args[1])

	default:
		flags.Usage()
		os.Exit(2)
	}

	if !ok {
		os.Exit(1)
	}
}

func runUpload(ctx context.Context, cfg *config.Config, tr *i18n.Translator, lang string, log logger.ZapLogger, paths []string) bool {
	u := upload.NewUploader(upload.Config{
		Endpoint: cfg.Upload.Endpoint,
		Preset:   cfg.Upload.Preset,
		MaxBytes: cfg.Upload.MaxBytes,
	}, nil, log)
	holder := form.NewHolder(model.CategoryPerfumer)

	ok := true
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			ok = false
			continue
		}
		info, err := f.Stat()
		if err != nil {
			f.Close()
			fmt.Fprintln(os.Stderr, err)
			ok = false
			continue
		}

		url, err := u.Upload(ctx, holder, upload.File{
			Name:        filepath.Base(p),
			ContentType: mime.TypeByExtension(filepath.Ext(p)),
			Size:        info.Size(),
			Body:        f,
		})
		f.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", p, u.Message(tr, lang, err))
			ok = false
			continue
		}
		fmt.Println(url)
	}
	return ok
}

func runSubmit(ctx context.Context, client *submission.Client, table pricing.Table, path string) bool {
	raw, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return false
	}
	var in orderFile
	if err := json.Unmarshal(raw, &in); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
		return false
	}
	in.Order.Small.Size = model.SizeSmall
	in.Order.Large.Size = model.SizeLarge

	q := table.QuoteOrder(in.Order)
	fmt.Printf("subtotal %d, shipping %d, total %d KRW\n", q.Subtotal, q.Shipping, q.Total)

	res := client.Submit(ctx, in.Category, in.Order, in.Favorite)
	fmt.Println(res.Message)
	return res.Success
}
