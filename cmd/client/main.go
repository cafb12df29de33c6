// Command ck is a CLI client for the contact-keeper REST API.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// ---- config/token store ----

type tokenFile struct {
	AccessToken string    `json:"access_token"`
	SavedAt     time.Time `json:"saved_at"`
}

func cfgDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "contactkeeper")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "contactkeeper")
}

func tokenPath() string { return filepath.Join(cfgDir(), "token.json") }

func saveToken(tok string) error {
	_ = os.MkdirAll(cfgDir(), 0o700)
	f, err := os.Create(tokenPath())
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(tokenFile{AccessToken: tok, SavedAt: time.Now()})
}

func loadToken() (string, error) {
	b, err := os.ReadFile(tokenPath())
	if err != nil {
		return "", err
	}
	var tf tokenFile
	if err := json.Unmarshal(b, &tf); err != nil {
		return "", err
	}
	if tf.AccessToken == "" {
		return "", errors.New("no token (login required)")
	}
	return tf.AccessToken, nil
}

// ---- http ----

func call(ctx context.Context, method, url, bearer string, body any) ([]byte, int, error) {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, 0, err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, rd)
	if err != nil {
		return nil, 0, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	return out, resp.StatusCode, err
}

func printBody(b []byte) {
	var v any
	if json.Unmarshal(b, &v) == nil {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(v)
		return
	}
	fmt.Println(string(b))
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}

func failStatus(code int, body []byte) {
	fmt.Fprintf(os.Stderr, "HTTP %d: %s\n", code, body)
	os.Exit(1)
}

func usage() {
	fmt.Fprintf(os.Stderr, `ck CLI
Usage:
  ck -addr http://HOST:PORT <cmd> [args]

Commands:
  version
  signup     -u <email> -p <password>
  login      -u <email> -p <password>                        (saves token)
  me
  list       [-limit N] [-offset N]
  get        -id <id>
  add        -first <name> -last <name> -email <e> -phone <p> -bday <YYYY-MM-DD>
  edit       -id <id> -first <name> -last <name> -email <e> -phone <p> -bday <YYYY-MM-DD>
  rm         -id <id>
  find       -email <e> | -first <name> | -last <name>
  birthday
`)
	os.Exit(2)
}

type contactPayload struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Birthday  string `json:"birthday"`
}

func contactFlags(fs *flag.FlagSet) *contactPayload {
	p := &contactPayload{}
	fs.StringVar(&p.FirstName, "first", "", "first name")
	fs.StringVar(&p.LastName, "last", "", "last name")
	fs.StringVar(&p.Email, "email", "", "email")
	fs.StringVar(&p.Phone, "phone", "", "phone")
	fs.StringVar(&p.Birthday, "bday", "", "birthday YYYY-MM-DD")
	return p
}

func mustToken() string {
	tok, err := loadToken()
	if err != nil {
		fail(err)
	}
	return tok
}

// ---- main ----

var (
	version   = "dev"
	buildDate = "unknown"
)

// main dispatches subcommands against the REST API.
func main() {
	addr := flag.String("addr", "http://localhost:8080", "server base URL")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
	}
	cmd := flag.Arg(0)
	base := *addr + "/api"

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch cmd {

	case "version":
		fmt.Printf("ck %s (%s)\n", version, buildDate)

	case "signup", "login":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		u := fs.String("u", "", "email")
		p := fs.String("p", "", "password")
		_ = fs.Parse(flag.Args()[1:])
		if *u == "" || *p == "" {
			fmt.Fprintln(os.Stderr, "need -u and -p")
			os.Exit(1)
		}
		body, code, err := call(ctx, http.MethodPost, base+"/auth/"+cmd, "",
			map[string]string{"email": *u, "password": *p})
		if err != nil {
			fail(err)
		}
		if code >= 300 {
			failStatus(code, body)
		}
		if cmd == "login" {
			var tf tokenFile
			if err := json.Unmarshal(body, &tf); err != nil {
				fail(err)
			}
			if err := saveToken(tf.AccessToken); err != nil {
				fail(err)
			}
			fmt.Println("logged in")
			return
		}
		printBody(body)

	case "me":
		body, code, err := call(ctx, http.MethodGet, base+"/users/me", mustToken(), nil)
		if err != nil {
			fail(err)
		}
		if code >= 300 {
			failStatus(code, body)
		}
		printBody(body)

	case "list":
		fs := flag.NewFlagSet("list", flag.ExitOnError)
		limit := fs.Int("limit", 10, "page size")
		offset := fs.Int("offset", 0, "page offset")
		_ = fs.Parse(flag.Args()[1:])
		url := fmt.Sprintf("%s/contacts?limit=%d&offset=%d", base, *limit, *offset)
		body, code, err := call(ctx, http.MethodGet, url, mustToken(), nil)
		if err != nil {
			fail(err)
		}
		if code >= 300 {
			failStatus(code, body)
		}
		printBody(body)

	case "get", "rm":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		id := fs.Int64("id", 0, "contact id")
		_ = fs.Parse(flag.Args()[1:])
		if *id < 1 {
			fmt.Fprintln(os.Stderr, "need -id")
			os.Exit(1)
		}
		method := http.MethodGet
		if cmd == "rm" {
			method = http.MethodDelete
		}
		body, code, err := call(ctx, method, fmt.Sprintf("%s/contacts/%d", base, *id), mustToken(), nil)
		if err != nil {
			fail(err)
		}
		if code >= 300 {
			failStatus(code, body)
		}
		if cmd == "rm" {
			fmt.Println("deleted")
			return
		}
		printBody(body)

	case "add":
		fs := flag.NewFlagSet("add", flag.ExitOnError)
		p := contactFlags(fs)
		_ = fs.Parse(flag.Args()[1:])
		body, code, err := call(ctx, http.MethodPost, base+"/contacts", mustToken(), p)
		if err != nil {
			fail(err)
		}
		if code >= 300 {
			failStatus(code, body)
		}
		printBody(body)

	case "edit":
		fs := flag.NewFlagSet("edit", flag.ExitOnError)
		id := fs.Int64("id", 0, "contact id")
		p := contactFlags(fs)
		_ = fs.Parse(flag.Args()[1:])
		if *id < 1 {
			fmt.Fprintln(os.Stderr, "need -id")
			os.Exit(1)
		}
		body, code, err := call(ctx, http.MethodPut, fmt.Sprintf("%s/contacts/%d", base, *id), mustToken(), p)
		if err != nil {
			fail(err)
		}
		if code >= 300 {
			failStatus(code, body)
		}
		printBody(body)

	case "find":
		fs := flag.NewFlagSet("find", flag.ExitOnError)
		email := fs.String("email", "", "exact email")
		first := fs.String("first", "", "exact first name")
		last := fs.String("last", "", "exact last name")
		_ = fs.Parse(flag.Args()[1:])
		var url string
		switch {
		case *email != "":
			url = base + "/contacts/search/" + *email
		case *first != "":
			url = base + "/contacts/search/first_name/" + *first
		case *last != "":
			url = base + "/contacts/search/last_name/" + *last
		default:
			fmt.Fprintln(os.Stderr, "need -email, -first or -last")
			os.Exit(1)
		}
		body, code, err := call(ctx, http.MethodGet, url, mustToken(), nil)
		if err != nil {
			fail(err)
		}
		if code >= 300 {
			failStatus(code, body)
		}
		printBody(body)

	case "birthday":
		body, code, err := call(ctx, http.MethodGet, base+"/contacts/birthday", mustToken(), nil)
		if err != nil {
			fail(err)
		}
		if code >= 300 {
			failStatus(code, body)
		}
		printBody(body)

	default:
		usage()
	}
}
