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

var (
	x = util.CheckErr

	opt_plain  = flag.Bool("plain", false, "output sentences in plain text rather than as trees")
	opt_pos    = flag.String("pos", "", "only print trees with a token whose part of speech matches this regexp")
	opt_word   = flag.String("word", "", "only print trees with a token whose word matches this regexp")
	opt_simple = flag.Bool("simple", false, "use the simplified tagset for recovered part-of-speech tags")
	opt_enc    = flag.String("enc", ancora.DefaultEncoding, "character encoding of the corpus files")

	chDoc = make(chan corpus.Doc)
)

func usage() {
	fmt.Fprintf(os.Stderr, `
Usage: %s [options] filename [filename...]
Usage: find . -name '*.xml' | %s [options]

Options:

`, os.Args[0], os.Args[0])
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Valid filename extensions in both cases:

  %s

`, strings.Join(corpus.Suffixes(), "\n  "))
}

func main() {

	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 && util.IsTerminal(os.Stdin) {
		usage()
		return
	}

	var posPattern, wordPattern *regexp.Regexp
	var err error
	if *opt_pos != "" {
		posPattern, err = regexp.Compile(*opt_pos)
		x(err)
	}
	if *opt_word != "" {
		wordPattern, err = regexp.Compile(*opt_word)
		x(err)
	}

	go getFiles()

	totalTrees := 0
	for doc := range chDoc {
		rd, err := ancora.NewReader(bytes.NewReader(doc.Data), &ancora.Options{
			Encoding:   *opt_enc,
			Simplified: *opt_simple,
		})
		if err != nil {
			util.WarnErr(fmt.Errorf("%s: %v", doc.Name, err))
		}

		name := corpus.Basename(doc.Name)
		numTrees := 0
		for {
			t, err := rd.ReadTree()
			if err == io.EOF {
				break
			}
			numTrees++

			if !ancora.Matches(t, posPattern, wordPattern) {
				continue
			}

			id := ""
			if label, ok := t.Label.(ancora.HasAnnotation); ok {
				id = label.Annotation(ancora.SentenceIDAnnotation)
			}
			output := t.String()
			if *opt_plain {
				output = t.Yield()
			}
			fmt.Printf("%s-%s\t%s\n", name, id, output)
		}
		rd.Close()

		fmt.Fprintf(os.Stderr, "%s: %d trees\n", doc.Name, numTrees)
		totalTrees += numTrees
	}

	fmt.Fprintf(os.Stderr, "\nRead %d trees\n", totalTrees)
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
