package main

import (
	"github.com/pebbe/util"

	"github.com/rug-compling/ancoragraph/ancora"
	"github.com/rug-compling/ancoragraph/corpus"

	"bufio"
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

const VERSION = 1

// vertex and edge id prefixes, one per label
const (
	idSentence = 3
	// nw is nummer 4, not used directly
	idNode = 5
	idWord = 6
	idRel  = 11
	idNext = 12
)

type wordT struct {
	aid   string
	begin int
}

var (
	x         = util.CheckErr
	reSpecial = regexp.MustCompile(`["\n\\]`)

	opt_t      = flag.String("t", "", "title")
	opt_simple = flag.Bool("simple", false, "use the simplified tagset for recovered part-of-speech tags")
	opt_enc    = flag.String("enc", ancora.DefaultEncoding, "character encoding of the corpus files")

	tmp string

	nSentence int
	nNode     int
	nWord     int
	nRel      int
	nNext     int

	fpSentence *os.File
	fpNode     *os.File
	fpWord     *os.File
	fpRel      *os.File
	fpNext     *os.File

	chDoc = make(chan corpus.Doc)

	featureMap = map[string]map[string]int{
		"node": make(map[string]int),
		"word": make(map[string]int),
		"rel":  make(map[string]int),
	}
)

func usage() {
	fmt.Fprintf(os.Stderr, `
Usage: %s [-t title] filename [filename...]
Usage: find . -name '*.xml' | %s -t title

Option -t is optional when there is exactly one input filename as argument

Valid filename extensions in both cases:

  %s

`, os.Args[0], os.Args[0], strings.Join(corpus.Suffixes(), "\n  "))
}

func main() {

	flag.Usage = usage
	flag.Parse()

	if (flag.NArg() == 0 && util.IsTerminal(os.Stdin)) || (flag.NArg() != 1 && *opt_t == "") {
		usage()
		return
	}

	graph := *opt_t
	if graph == "" {
		graph = corpus.Basename(flag.Arg(0))
	}

	if graph == "public" {
		x(fmt.Errorf("The name 'public' is reserved"))
	}

	tmp = "tmp." + graph + "."

	var err error
	fpSentence, err = os.Create(tmp + "sentence")
	x(err)
	fpNode, err = os.Create(tmp + "node")
	x(err)
	fpWord, err = os.Create(tmp + "word")
	x(err)
	fpRel, err = os.Create(tmp + "rel")
	x(err)
	fpNext, err = os.Create(tmp + "next")
	x(err)

	fmt.Fprintf(fpSentence, "COPY %s.sentence (id, properties) FROM stdin;\n", graph)
	fmt.Fprintf(fpNode, "COPY %s.node (id, properties) FROM stdin;\n", graph)
	fmt.Fprintf(fpWord, "COPY %s.word (id, properties) FROM stdin;\n", graph)
	fmt.Fprintf(fpRel, "COPY %s.rel (id, start, \"end\", properties) FROM stdin;\n", graph)
	fmt.Fprintf(fpNext, "COPY %s.next (id, start, \"end\", properties) FROM stdin;\n", graph)

	// prefase

	fmt.Printf(`drop graph if exists %s cascade;
create graph %s;
set graph_path='%s';
create vlabel sentence;
create vlabel nw;
create vlabel node inherits (nw);
create vlabel word inherits (nw);
create elabel rel;
create elabel next;
`, graph, graph, graph)

	seen := make(map[string]bool)

	go getFiles()

	count := 0
	for doc := range chDoc {
		count++
		fmt.Fprintf(os.Stderr, "  %d %s                \r", count, doc.Name)

		rd, err := ancora.NewReader(bytes.NewReader(doc.Data), &ancora.Options{
			Encoding:   *opt_enc,
			Simplified: *opt_simple,
		})
		if err != nil {
			util.WarnErr(fmt.Errorf("%s: %v", doc.Name, err))
		}

		name := corpus.Basename(doc.Name)
		for {
			t, err := rd.ReadTree()
			if err == io.EOF {
				break
			}

			id := ""
			if label, ok := t.Label.(ancora.HasAnnotation); ok {
				id = label.Annotation(ancora.SentenceIDAnnotation)
			}
			sentid := name + "-" + id

			if seen[sentid] {
				x(fmt.Errorf("Duplicate sentid %q", sentid))
			}
			seen[sentid] = true

			doSentence(sentid, t)
		}
		rd.Close()
	}

	// eindfase

	fpSentence.Close()
	fpNode.Close()
	fpWord.Close()
	fpRel.Close()
	fpNext.Close()

	for _, f := range []string{"sentence", "node", "word", "rel", "next"} {
		fp, err := os.Open(tmp + f)
		x(err)
		_, err = io.Copy(os.Stdout, fp)
		x(err)
		fp.Close()
		fmt.Print("\\.\n\n")
		os.Remove(tmp + f)
	}

	fmt.Printf("select pg_catalog.setval('%s.sentence_id_seq', %d, true);\n", graph, nSentence)
	fmt.Printf("select pg_catalog.setval('%s.node_id_seq', %d, true);\n", graph, nNode)
	fmt.Printf("select pg_catalog.setval('%s.word_id_seq', %d, true);\n", graph, nWord)
	fmt.Printf("select pg_catalog.setval('%s.rel_id_seq', %d, true);\n", graph, nRel)
	fmt.Printf("select pg_catalog.setval('%s.next_id_seq', %d, true);\n", graph, nNext)

	for nw, features := range featureMap {
		for key, value := range features {
			fmt.Printf("create (:feature{v: '%s', name: '%s', count: %d});\n", nw, sq(key), value)
		}
	}

	fmt.Print(`create property index on sentence("sentid");
create property index on sentence("len");
create property index on node("sentid");
create property index on node("id");
create property index on node("cat");
create property index on word("sentid");
create property index on word("id");
create property index on word("begin");
create property index on word("word");
create property index on word("lemma");
create property index on word("pos");
create property index on rel("ord");
`)

	fmt.Printf("create (:doc{ancora2agens_version: %d, input_date: (select CURRENT_TIMESTAMP(0))});\n", VERSION)
	fmt.Println("checkpoint;")
}

// doSentence writes the vertices and edges for one tree: a sentence
// vertex, a node vertex per constituent, a word vertex per preterminal,
// rel edges from parent to child, and next edges in word order.
func doSentence(sentid string, t *ancora.Tree) {

	words := make([]wordT, 0)
	begin := 0
	nid := 0

	var f func(parent string, ord int, t *ancora.Tree)
	f = func(parent string, ord int, t *ancora.Tree) {
		nid++
		id := nid
		var aid string
		if t.IsPreTerminal() {
			nWord++
			aid = fmt.Sprintf("%d.%d", idWord, nWord)
			leaf := t.Children[0].Label
			jsn := fmt.Sprintf("{\"sentid\": %s, \"id\": %d, \"begin\": %d, \"pos\": %s, \"word\": %s%s}",
				q(sentid), id, begin, q(t.Label.Value()), q(leaf.Value()), lemmaExtra(leaf))
			fmt.Fprintf(fpWord, "%s\t%s\n", aid, jsn)
			words = append(words, wordT{aid: aid, begin: begin})
			begin++
			featureCount("word", "sentid", "id", "begin", "pos", "word")
		} else {
			nNode++
			aid = fmt.Sprintf("%d.%d", idNode, nNode)
			first := begin
			for i, c := range t.Children {
				f(aid, i, c)
			}
			jsn := fmt.Sprintf("{\"sentid\": %s, \"id\": %d, \"begin\": %d, \"end\": %d, \"cat\": %s}",
				q(sentid), id, first, begin, q(t.Label.Value()))
			fmt.Fprintf(fpNode, "%s\t%s\n", aid, jsn)
			featureCount("node", "sentid", "id", "begin", "end", "cat")
		}

		nRel++
		fmt.Fprintf(fpRel, "%d.%d\t%s\t%s\t{\"ord\": %d}\n", idRel, nRel, parent, aid, ord)
		featureCount("rel", "ord")
	}

	nSentence++
	lblSentence := fmt.Sprintf("%d.%d", idSentence, nSentence)

	f(lblSentence, 0, t)

	tokens := make([]string, 0, len(words))
	for _, leaf := range t.Leaves() {
		if w := leaf.Label.Value(); w != ancora.EmptyLeaf {
			tokens = append(tokens, w)
		}
	}
	fmt.Fprintf(fpSentence, "%s\t{\"sentid\": %s, \"tokens\": %s, \"len\": %d}\n",
		lblSentence, q(sentid), q(strings.Join(tokens, " ")), len(tokens))

	for i := 0; i < len(words)-1; i++ {
		nNext++
		fmt.Fprintf(fpNext, "%d.%d\t%s\t%s\t{}\n",
			idNext, nNext, words[i].aid, words[i+1].aid)
	}
}

func lemmaExtra(leaf ancora.Label) string {
	if l, ok := leaf.(ancora.HasLemma); ok && l.Lemma() != "" {
		featureCount("word", "lemma")
		return fmt.Sprintf(", \"lemma\": %s", q(l.Lemma()))
	}
	return ""
}

func featureCount(item string, keys ...string) {
	for _, key := range keys {
		featureMap[item][key] = featureMap[item][key] + 1
	}
}

func q(s string) string {
	return `"` + reSpecial.ReplaceAllStringFunc(s, func(s1 string) string {
		if s1 == "\n" {
			return `\\n`
		}
		if s1 == `"` {
			return `\\"`
		}
		if s1 == `\` {
			return `\\\\`
		}
		x(fmt.Errorf("shouldn't happen"))
		return s1
	}) + `"`
}

func sq(s string) string {
	return strings.Replace(strings.Replace(s, "'", "''", -1), `\`, `\\`, -1)
}

func getFiles() {
	if !util.IsTerminal(os.Stdin) && flag.NArg() == 0 {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			filename := strings.TrimSpace(scanner.Text())
			if filename != "" {
				x(corpus.Walk(filename, chDoc))
			}
		}
		x(scanner.Err())
	}
	for _, filename := range flag.Args() {
		x(corpus.Walk(filename, chDoc))
	}
	close(chDoc)
}
