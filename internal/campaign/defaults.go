package campaign

// DefaultGraph returns the built-in 22-node campaign map.
func DefaultGraph() *Graph {
	g, err := NewGraph([]Node{
		{ID: 1, Type: NodeStart, Label: "Partenza", X: 80, Y: 300, Connections: []int{2, 3}},
		{ID: 2, Type: NodeCombat, Label: "Avanguardia", X: 200, Y: 210, Connections: []int{4, 5}},
		{ID: 3, Type: NodeResource, Label: "Cassa Abbandonata", X: 200, Y: 390, Connections: []int{5, 6}},
		{ID: 4, Type: NodeEvent, Label: "Eco della Caverna", X: 340, Y: 170, Connections: []int{7}},
		{ID: 5, Type: NodeCombat, Label: "Patuglia Goblin", X: 340, Y: 300, Connections: []int{7, 8}},
		{ID: 6, Type: NodeRest, Label: "Riposo Sicuro", X: 340, Y: 440, Connections: []int{8, 9}},
		{ID: 7, Type: NodeCombat, Label: "Guardia Scudo", X: 480, Y: 210, Connections: []int{10, 11}},
		{ID: 8, Type: NodeEvent, Label: "Trappola Runica", X: 480, Y: 320, Connections: []int{11, 12}},
		{ID: 9, Type: NodeResource, Label: "Minerali Grezzi", X: 480, Y: 470, Connections: []int{12}},
		{ID: 10, Type: NodeCombat, Label: "Campione", X: 620, Y: 170, Connections: []int{13, 14}},
		{ID: 11, Type: NodeCombat, Label: "Doppia Lama", X: 620, Y: 300, Connections: []int{14, 15}},
		{ID: 12, Type: NodeRest, Label: "Focolare", X: 620, Y: 470, Connections: []int{15, 16}},
		{ID: 13, Type: NodeEvent, Label: "Sussurri", X: 760, Y: 150, Connections: []int{17}},
		{ID: 14, Type: NodeResource, Label: "Zaino del Minatore", X: 760, Y: 270, Connections: []int{17, 18}},
		{ID: 15, Type: NodeCombat, Label: "Sentinella", X: 760, Y: 380, Connections: []int{18, 19}},
		{ID: 16, Type: NodeEvent, Label: "Reliquia", X: 760, Y: 520, Connections: []int{19}},
		{ID: 17, Type: NodeCombat, Label: "Mietitore", X: 900, Y: 230, Connections: []int{20, 21}},
		{ID: 18, Type: NodeRest, Label: "Rifugio", X: 900, Y: 340, Connections: []int{21}},
		{ID: 19, Type: NodeCombat, Label: "Avanguardia Elite", X: 900, Y: 500, Connections: []int{21}},
		{ID: 20, Type: NodeEvent, Label: "Vena d'Oro", X: 1040, Y: 200, Connections: []int{22}},
		{ID: 21, Type: NodeCombat, Label: "Scorta Finale", X: 1040, Y: 380, Connections: []int{22}},
		{ID: 22, Type: NodeBoss, Label: "Re dei Goblin", X: 1180, Y: 300},
	})
	if err != nil {
		panic("default map: " + err.Error())
	}
	return g
}
