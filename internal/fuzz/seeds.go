package fuzztests

import (
	"os"
	"path/filepath"
	"testing"

	"numerus/internal/testkit"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB: ограничение для тестового корпуса
	maxFuzzInput = 1 << 16
)

var builtinSeeds = []string{
	"",
	"AVTEM\n",
	"NOTA: commentarius\n",
	"DECLARA x EST 10\nDECLARA y EST XXXII\nDECLARA sum EST x ADDIUS y\nSCRIBE(sum)\nAVTEM\n",
	"SCRIBE(\"Sum: \" ADDIUS ARABIZA(MCMXCIV))\n",
	"SCRIBE((2 ADDIUS 3) MULTIPLICA 4 DIVIDE 0)\n",
	"DECLARA EST\nSCRIBE(\nSCRIBE(1 ~)\n",
	"SCRIBE(\"unterminated\n",
	"SCRIBE(IIII ADDIUS 99999999999)\n",
	"x EST ROMANIZA(0)\r\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
	addScenarioSeeds(f)
	addExampleSeeds(f)
}

func addScenarioSeeds(f *testing.F) {
	scenarios, err := testkit.LoadScenarios(filepath.Join("..", "driver", "testdata", "scenarios"))
	if err != nil {
		return
	}
	for _, sc := range scenarios {
		f.Add(clampSeed([]byte(sc.Source)))
	}
}

func addExampleSeeds(f *testing.F) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "examples", "*.npp"))
	if err != nil {
		return
	}
	for _, path := range paths {
		// #nosec G304 -- path comes from repository examples
		src, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		f.Add(clampSeed(src))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
