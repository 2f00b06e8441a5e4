// Command synonyms gera o arquivo de sinônimos usado no índice de denúncias
// (ELASTICSEARCH_SYNONYMS_FILE) a partir do thesaurus th_pt_BR.dat.
//
//	go run ./cmd/synonyms convert th_pt_BR.dat synonyms.txt
//	go run ./cmd/synonyms filter synonyms.txt synonyms_seguranca.txt
package main

import (
	"fmt"
	"log"
	"os"
	"portalseguranca/internal/repositories/elsearch"
)

func main() {
	if len(os.Args) < 4 {
		fmt.Println("Uso:")
		fmt.Println("  synonyms convert th_pt_BR.dat synonyms.txt")
		fmt.Println("  synonyms filter synonyms.txt synonyms_seguranca.txt")
		os.Exit(2)
	}

	command, inputFile, outputFile := os.Args[1], os.Args[2], os.Args[3]

	input, err := os.Open(inputFile)
	if err != nil {
		log.Fatalf("erro ao abrir arquivo: %v", err)
	}
	defer func() {
		_ = input.Close()
	}()

	output, err := os.Create(outputFile)
	if err != nil {
		log.Fatalf("erro ao criar arquivo de saída: %v", err)
	}
	defer func() {
		_ = output.Close()
	}()

	var n int
	switch command {
	case "convert":
		n, err = elsearch.NewThesaurus().Convert(input, output)
	case "filter":
		n, err = elsearch.FilterByKeywords(input, output, elsearch.SegurancaKeywords)
	default:
		log.Fatalf("comando inválido %q: use 'convert' ou 'filter'", command)
	}
	if err != nil {
		log.Fatalf("erro: %v", err)
	}

	fmt.Printf("%s: %d linhas escritas em %s\n", command, n, outputFile)
}
