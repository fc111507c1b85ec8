package main

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/PodderInstituteBD/NutriVision/internal/nutrition"
)

func TestReadProfile(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("Ada King\nfemale\n36\n165\n58\nlight\ncut\n"))
	var out bytes.Buffer

	p, err := readProfile(in, &out)
	require.NoError(t, err)
	require.Equal(t, nutrition.Profile{
		Name:          "Ada King",
		Sex:           nutrition.SexFemale,
		Age:           36,
		HeightCM:      165,
		WeightKG:      58,
		ActivityLevel: nutrition.ActivityLight,
		DietMode:      nutrition.DietCut,
	}, p)
	require.Contains(t, out.String(), "Height (cm): ")
}

func TestReadProfile_Rejects(t *testing.T) {
	cases := map[string]string{
		"empty name":      "\n",
		"zero age":        "Ada\nfemale\n0\n",
		"fractional age":  "Ada\nfemale\n0.5\n",
		"age too high":    "Ada\nfemale\n200\n",
		"bad height":      "Ada\nfemale\n36\ntall\n",
		"NaN height":      "Ada\nfemale\n36\nNaN\n",
		"height too high": "Ada\nfemale\n36\n301\n",
		"neg weight":      "Ada\nfemale\n36\n165\n-1\n",
		"Inf weight":      "Ada\nfemale\n36\n165\nInf\n",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := readProfile(bufio.NewReader(strings.NewReader(input)), &bytes.Buffer{})
			require.Error(t, err)
		})
	}
}
