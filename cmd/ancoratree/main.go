package main

import (
	ag "github.com/bitnine-oss/agensgraph-golang"
	_ "github.com/lib/pq"

	"bytes"
	"database/sql"
	"fmt"
	"html"
	"net/http/cgi"
	"os"
	"os/exec"
	"regexp"
	"runtime"
	"sort"
	"strconv"
	"strings"
)

type Edge struct {
	from int
	to   int
	ord  int
}

type Word struct {
	id    int
	begin int
}

var (
	reQuote = regexp.MustCompile(`\\.`)
	db      *sql.DB
)

func main() {

	req, err := cgi.Request()
	if x(err) {
		return
	}

	err = req.ParseForm()
	if x(err) {
		return
	}

	graph := strings.Replace(req.FormValue("c"), "'", "", -1)
	sid := strings.Replace(req.FormValue("s"), "'", "", -1)
	idlist := strings.TrimSpace(req.FormValue("i"))

	if x(openDB()) {
		return
	}

	_, err = db.Exec("set graph_path='" + graph + "'")
	if x(err) {
		return
	}

	row := db.QueryRow("match (s:sentence{sentid:'" + sid + "'}) return s.tokens")
	var zin string
	if row != nil {
		if x(row.Scan(&zin)) {
			return
		}
		zin = html.EscapeString(unescape(zin))
	}

	tree, ok := makeTree(sid, idlist)
	if !ok {
		return
	}

	cmd := exec.Command("dot", "-Tsvg")
	cmd.Stdin = tree
	b, err := cmd.CombinedOutput()
	if x(err) {
		return
	}
	svg, ok := postProcess(string(b))
	if !ok {
		return
	}

	fmt.Printf(`Content-type: text/html; charset=utf-8

<html>
<head>
<title>%s</title>
<link rel="stylesheet" type="text/css" href="../tree.css">
<link rel="stylesheet" type="text/css" href="../tooltip.css" />
<script type="text/javascript" src="../tooltip.js"></script>
</head>
<body>
<em>%s</em>
<p>
corpus: %s<br>
sentence-ID: %s
<div class="svg">
%s
</div>
</body>
</html>
`, zin, zin, graph, sid, svg)

}

func makeTree(sid, idlist string) (tree *bytes.Buffer, ok bool) {

	idmap := make(map[int]bool)
	if idlist != "" {
		for _, id := range strings.Split(idlist, ",") {
			i, err := strconv.Atoi(strings.TrimSpace(id))
			if x(err) {
				return
			}
			idmap[i] = true
		}
	}

	rows, err := db.Query("match (n1)-[r:rel]->(n2:nw{sentid:'" + sid + "'}) return n1, r, n2 order by r.ord")
	if x(err) {
		return
	}

	nodes := make([]ag.BasicVertex, 0)
	links := make([]Edge, 0)
	words := make([]Word, 0)

	seen := make(map[int]bool)
	for rows.Next() {
		var n1, r, n2 []byte
		if x(rows.Scan(&n1, &r, &n2)) {
			return
		}

		var v1 ag.BasicVertex
		var e ag.BasicEdge
		var v2 ag.BasicVertex

		if x(v1.Scan(n1)) {
			return
		}
		if x(e.Scan(r)) {
			return
		}
		if x(v2.Scan(n2)) {
			return
		}

		id2 := toInt(v2.Properties["id"])
		if !seen[id2] {
			seen[id2] = true
			nodes = append(nodes, v2)

			if v2.Label == "word" {
				words = append(words, Word{
					id:    id2,
					begin: toInt(v2.Properties["begin"]),
				})
			}
		}

		// the sentence vertex is not part of the drawing
		if v1.Label != "sentence" {
			links = append(links, Edge{
				from: toInt(v1.Properties["id"]),
				to:   id2,
				ord:  toInt(e.Properties["ord"]),
			})
		}
	}
	if x(rows.Err()) {
		return
	}

	if len(nodes) == 0 {
		fmt.Print("Content-type: text/plain; charset=utf-8\n\nNot found\n")
		return
	}

	sort.Slice(words, func(a, b int) bool {
		return words[a].begin < words[b].begin
	})

	sort.SliceStable(links, func(a, b int) bool {
		if links[a].from == links[b].from {
			return links[a].ord < links[b].ord
		}
		return links[a].from < links[b].from
	})

	var buf bytes.Buffer

	fmt.Fprint(&buf, `strict graph gr {

    ranksep=".25 equally"
    nodesep=.05

    node [shape=box, height=0, width=0, style=filled, fontsize=12, color="#ffc0c0", fontname="Helvetica"];

`)

	for _, node := range nodes {
		if node.Label == "node" {
			tooltip := makeTooltip(node.Properties)
			id := toInt(node.Properties["id"])
			if idmap[id] {
				fmt.Fprintf(&buf, "    n%d [label=%q, style=bold, color=\"#ff0000\", tooltip=%q];\n", id, toString(node.Properties["cat"]), tooltip)
			} else {
				fmt.Fprintf(&buf, "    n%d [label=%q, tooltip=%q];\n", id, toString(node.Properties["cat"]), tooltip)
			}
		}
	}

	fmt.Fprint(&buf, `
    node [fontname="Helvetica-Oblique", color="#c0c0ff"];

`)

	for _, node := range nodes {
		if node.Label == "word" {
			tooltip := makeTooltip(node.Properties)
			id := toInt(node.Properties["id"])
			if idmap[id] {
				fmt.Fprintf(&buf, "    n%d [label=%q, style=bold, color=\"#0000ff\", tooltip=%q];\n", id, toString(node.Properties["word"]), tooltip)
			} else {
				fmt.Fprintf(&buf, "    n%d [label=%q, tooltip=%q];\n", id, toString(node.Properties["word"]), tooltip)
			}
		}
	}

	fmt.Fprintf(&buf, "\n    {rank=same; edge[style=invis]; n%d", words[0].id)
	for _, w := range words[1:] {
		fmt.Fprintf(&buf, " -- n%d", w.id)
	}

	fmt.Fprint(&buf, `}

    edge [sametail=true, samehead=true, color="#d3d3d3"];

`)

	for _, link := range links {
		if idmap[link.from] && idmap[link.to] {
			fmt.Fprintf(&buf, "    n%d -- n%d [color=\"#000000\"];\n", link.from, link.to)
		} else {
			fmt.Fprintf(&buf, "    n%d -- n%d;\n", link.from, link.to)
		}
	}

	fmt.Fprint(&buf, "\n}\n")

	return &buf, true
}

func postProcess(svg string) (string, bool) {
	// skip the XML declaration and doctype
	if i := strings.Index(svg, "<svg"); i < 0 {
		x(fmt.Errorf("BUG"))
		return "", false
	} else {
		svg = svg[i:]
	}

	lines := make([]string, 0)
	a := ""
	for _, line := range strings.SplitAfter(svg, "\n") {
		// drop everything starting with <title>
		i := strings.Index(line, "<title")
		if i >= 0 {
			line = line[:i] + "\n"
		}

		// turn <a xlink> into a tooltip
		i = strings.Index(line, "<a xlink")
		if i >= 0 {
			s := line[i:]
			line = line[:i] + "\n"
			i = strings.Index(s, "\"")
			s = s[i+1:]
			i = strings.LastIndex(s, "\"")
			a = strings.TrimSpace(s[:i])

		}
		if strings.HasPrefix(line, "<text ") && a != "" {
			line = "<text onmouseover=\"tooltip.show('" + html.EscapeString(a) + "')\" onmouseout=\"tooltip.hide()\"" + line[5:]
		}
		if strings.HasPrefix(line, "</a>") {
			line = ""
			a = ""
		}

		lines = append(lines, line)
	}
	return strings.Join(lines, ""), true
}

func makeTooltip(p map[string]interface{}) string {
	keys := make([]string, 0, len(p))
	for key := range p {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(a, b int) bool {
		return strings.ToLower(keys[a]) < strings.ToLower(keys[b])
	})
	var buf bytes.Buffer
	buf.WriteString("<table class=\"attr\">")
	for _, key := range keys {
		if key != "sentid" {
			fmt.Fprintf(&buf, "<tr><td class=\"lbl\">%s</td><td>%s</td></tr>", html.EscapeString(key), html.EscapeString(fmt.Sprint(p[key])))
		}
	}
	buf.WriteString("</table>")
	return html.EscapeString(buf.String()) // double escape
}

func unescape(s string) string {
	if len(s) == 0 {
		return s
	}
	if s[0] != '"' || s[len(s)-1] != '"' {
		return s
	}

	s = s[1 : len(s)-1]
	return reQuote.ReplaceAllStringFunc(s, func(s1 string) string {
		if s1 == `\n` {
			return "\n"
		}
		if s1 == `\r` {
			return "\r"
		}
		if s1 == `\t` {
			return "\t"
		}
		return s1[1:]
	})
}

func toString(v interface{}) string {
	return fmt.Sprint(v)
}

func toInt(v interface{}) int {
	switch t := v.(type) {
	case string:
		i, err := strconv.Atoi(unescape(t))
		if err == nil {
			return i
		}
		return -999
	case int:
		return t
	case float64:
		return int(t)
	}
	return -999
}

func openDB() error {

	login := os.Getenv("ANCORAGRAPH_LOGIN")
	if login == "" {
		login = "user=guest dbname=ancoragraph sslmode=disable"
	}

	var err error
	db, err = sql.Open("postgres", login)
	if err != nil {
		return err
	}

	err = db.Ping()
	if err != nil {
		db.Close()
		return err
	}

	return nil
}

func x(err error, msg ...interface{}) bool {
	if err == nil {
		return false
	}

	var b bytes.Buffer
	_, filename, lineno, ok := runtime.Caller(1)
	if ok {
		b.WriteString(fmt.Sprintf("%v:%v: %v", filename, lineno, err))
	} else {
		b.WriteString(err.Error())
	}
	if len(msg) > 0 {
		b.WriteString(",")
		for _, m := range msg {
			b.WriteString(fmt.Sprintf(" %v", m))
		}
	}
	fmt.Print(`Content-type: text/plain; charset=utf-8

`)

	fmt.Println(b.String())
	return true
}
