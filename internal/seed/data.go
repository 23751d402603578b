package seed

import (
	"fmt"
	"strings"
)

// Small word pools for synthetic values. Variety matters less than
// determinism; the random source decides the combinations.

var companyStems = []string{
	"Norte", "Andina", "Pampa", "Austral", "Litoral", "Cordillera",
	"Delta", "Horizonte", "Meridian", "Atlas", "Vertex", "Quantum",
}

var companySuffixes = []string{"S.A.", "S.R.L.", "Group", "Partners", "Logistics", "Trading"}

var firstNames = []string{
	"Ana", "Bruno", "Carla", "Diego", "Elena", "Franco", "Gabriela",
	"Hernan", "Irene", "Julian", "Karen", "Lucas", "Mariana", "Nicolas",
}

var lastNames = []string{
	"Alvarez", "Benitez", "Castro", "Dominguez", "Esposito", "Fernandez",
	"Gimenez", "Herrera", "Ibanez", "Juarez", "Klein", "Lopez",
}

var productWords = []string{
	"Router", "Switch", "Sensor", "Gateway", "Module", "Panel", "Valve",
	"Compressor", "Filter", "Terminal", "Adapter", "Controller",
}

var campaignAdjectives = []string{"Integrated", "Scalable", "Adaptive", "Proactive", "Seamless", "Dynamic"}
var campaignNouns = []string{"Outreach", "Engagement", "Expansion", "Activation", "Acquisition", "Retention"}

// agents pairs a raw user agent string with the device class the weblog
// records for it.
type agent struct {
	ua     string
	device string
}

var userAgents = []agent{
	{"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/58.0.3029.110 Safari/537.3", "Desktop"},
	{"Mozilla/5.0 (iPhone; CPU iPhone OS 13_3 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/13.0 Mobile/15E148 Safari/604.1", "Mobile"},
	{"Mozilla/5.0 (Linux; Android 10; SM-G970F) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/89.0.4389.90 Mobile Safari/537.36", "Mobile"},
	{"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36", "Desktop"},
	{"Mozilla/5.0 (iPad; CPU OS 13_3 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/13.0 Mobile/15E148 Safari/604.1", "Tablet"},
}

func (s *Seeder) companyName() string {
	return companyStems[s.rng.Intn(len(companyStems))] + " " + companySuffixes[s.rng.Intn(len(companySuffixes))]
}

func (s *Seeder) personName() string {
	return firstNames[s.rng.Intn(len(firstNames))] + " " + lastNames[s.rng.Intn(len(lastNames))]
}

func (s *Seeder) productName() string {
	return fmt.Sprintf("%s %c%d", productWords[s.rng.Intn(len(productWords))], 'A'+rune(s.rng.Intn(26)), 100+s.rng.Intn(900))
}

func (s *Seeder) campaignName() string {
	return campaignAdjectives[s.rng.Intn(len(campaignAdjectives))] + " " + campaignNouns[s.rng.Intn(len(campaignNouns))]
}

func (s *Seeder) username() string {
	return fmt.Sprintf("%s%d",
		strings.ToLower(firstNames[s.rng.Intn(len(firstNames))]), s.rng.Intn(100))
}
