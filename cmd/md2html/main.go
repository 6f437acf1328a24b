package main

import (
	"github.com/pebbe/util"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"bytes"
	"fmt"
	"os"
	"path"
	"strings"
)

var (
	x = util.CheckErr

	template = `<!DOCTYPE html>
<html>
  <head>
    <title>AnCoraGraph -- %s</title>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <link rel="icon" href="../../favicon.ico" type="image/ico">
    <link rel="stylesheet" href="style.css" type="text/css">
  </head>
  <body%s>
    <div id="container">
      <h1>%s</h1>
%s
    </div>
  </body>
</html>
`
)

func main() {
	b, err := os.ReadFile(os.Args[1])
	x(err)

	ss := strings.Split(string(b), "////-->")
	var s string
	opts := map[string]string{}
	if len(ss) == 2 {
		opts = getOpts(ss[0])
		s = ss[1]
	} else {
		s = ss[0]
	}
	s = markdown(s)

	s = strings.Replace(s, `title="i"`, `class="internal"`, -1)
	s = strings.Replace(s, "<!--[[", "", -1)
	s = strings.Replace(s, "]]-->", "", -1)
	s = strings.Replace(s, "<table>", `<div class="overflow mytable"><table>`, -1)
	s = strings.Replace(s, "</table>", "</table></div>", -1)

	title := opts["title:"]
	if title == "" {
		title = strings.Replace(strings.Replace(path.Base(os.Args[1]), ".md", "", -1), "_", " ", -1)
	}

	class := ""
	if c := opts["class:"]; c != "" {
		class = fmt.Sprintf(" class=%q", c)
	}

	fmt.Printf(template, title, class, title, s)
}

func getOpts(s string) map[string]string {
	m := make(map[string]string)
	for _, line := range strings.Split(s, "\n") {
		ww := strings.Fields(line)
		if len(ww) > 1 {
			m[ww[0]] = strings.Join(ww[1:], " ")
		}
	}
	return m
}

func markdown(s string) string {
	md := goldmark.New(
		goldmark.WithExtensions(extension.Table, extension.Typographer),
	)
	var buf bytes.Buffer
	x(md.Convert([]byte(s), &buf))
	return buf.String()
}
