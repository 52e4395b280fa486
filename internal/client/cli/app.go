package cli

import (
	"bufio"
	"io"

	"github.com/dmitrijs2005/placeholder/internal/client/client"
	"github.com/dmitrijs2005/placeholder/internal/client/config"
)

type App struct {
	config *config.Config
	api    client.Client
	reader *bufio.Reader
	out    io.Writer
}

// newAPIClient is a seam for tests.
var newAPIClient = func(c *config.Config) client.Client {
	return client.NewHTTPClient(c.ServerURL, c.Timeout)
}

func NewApp(c *config.Config, in io.Reader, out io.Writer) *App {
	return &App{
		config: c,
		api:    newAPIClient(c),
		reader: bufio.NewReader(in),
		out:    out,
	}
}
