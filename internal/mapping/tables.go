package mapping

// Tabelas de tradução por entidade. O banco usa nomes em português; a API
// expõe nomes em inglês.

var Members = &Entity{
	Name:    "members",
	Table:   "membros",
	Columns: []string{"id", "nome", "email", "telefone", "endereco", "data_nascimento", "data_ingresso", "tipo_membro", "status", "foto_url", "created_at", "updated_at"},
	Fields: map[string]string{
		"id":              "id",
		"nome":            "name",
		"email":           "email",
		"telefone":        "phone",
		"endereco":        "address",
		"data_nascimento": "birthDate",
		"data_ingresso":   "joinDate",
		"tipo_membro":     "membershipType",
		"status":          "status",
		"foto_url":        "photoUrl",
		"created_at":      "createdAt",
		"updated_at":      "updatedAt",
	},
	Internal:    map[string]bool{"created_at": true, "updated_at": true},
	DefaultSort: "data_ingresso",
	Sortable: map[string]bool{
		"nome":          true,
		"data_ingresso": true,
		"created_at":    true,
	},
}

var Events = &Entity{
	Name:    "events",
	Table:   "eventos",
	Columns: []string{"id", "titulo", "descricao", "data", "horario", "local", "imagem_url", "criado_por", "created_at", "updated_at"},
	Fields: map[string]string{
		"id":         "id",
		"titulo":     "title",
		"descricao":  "description",
		"data":       "date",
		"horario":    "time",
		"local":      "location",
		"imagem_url": "imageUrl",
		"criado_por": "createdBy",
		"created_at": "createdAt",
		"updated_at": "updatedAt",
	},
	Internal:    map[string]bool{"created_at": true, "updated_at": true, "criado_por": true},
	DefaultSort: "data",
	Sortable: map[string]bool{
		"titulo":     true,
		"data":       true,
		"created_at": true,
	},
}

var Donations = &Entity{
	Name:    "donations",
	Table:   "doacoes",
	Columns: []string{"id", "valor", "tipo", "membro_id", "data", "metodo_pagamento", "observacao", "created_at"},
	Fields: map[string]string{
		"id":               "id",
		"valor":            "amount",
		"tipo":             "type",
		"membro_id":        "memberId",
		"data":             "date",
		"metodo_pagamento": "paymentMethod",
		"observacao":       "notes",
		"created_at":       "createdAt",
	},
	Relations:   map[string]*Entity{"membro": Members},
	Internal:    map[string]bool{"created_at": true},
	DefaultSort: "data",
	Sortable: map[string]bool{
		"valor":      true,
		"data":       true,
		"created_at": true,
	},
}

var Ministries = &Entity{
	Name:    "ministries",
	Table:   "ministerios",
	Columns: []string{"id", "nome", "descricao", "lider_id", "created_at", "updated_at"},
	Fields: map[string]string{
		"id":         "id",
		"nome":       "name",
		"descricao":  "description",
		"lider_id":   "leaderId",
		"created_at": "createdAt",
		"updated_at": "updatedAt",
	},
	Relations:   map[string]*Entity{"lider": Members},
	Internal:    map[string]bool{"created_at": true, "updated_at": true},
	DefaultSort: "nome",
	Sortable: map[string]bool{
		"nome":       true,
		"created_at": true,
	},
}

var Visits = &Entity{
	Name:    "visits",
	Table:   "visitas",
	Columns: []string{"id", "membro_id", "pastor_id", "data", "motivo", "observacoes", "status", "created_at", "updated_at"},
	Fields: map[string]string{
		"id":          "id",
		"membro_id":   "memberId",
		"pastor_id":   "pastorId",
		"data":        "date",
		"motivo":      "reason",
		"observacoes": "notes",
		"status":      "status",
		"created_at":  "createdAt",
		"updated_at":  "updatedAt",
	},
	Relations:   map[string]*Entity{"membro": Members},
	Internal:    map[string]bool{"created_at": true, "updated_at": true},
	DefaultSort: "data",
	Sortable: map[string]bool{
		"data":       true,
		"status":     true,
		"created_at": true,
	},
}

var Visitors = &Entity{
	Name:    "visitors",
	Table:   "visitantes",
	Columns: []string{"id", "nome", "telefone", "email", "data_visita", "como_conheceu", "created_at", "updated_at"},
	Fields: map[string]string{
		"id":            "id",
		"nome":          "name",
		"telefone":      "phone",
		"email":         "email",
		"data_visita":   "visitDate",
		"como_conheceu": "referralSource",
		"created_at":    "createdAt",
		"updated_at":    "updatedAt",
	},
	Internal:    map[string]bool{"created_at": true, "updated_at": true},
	DefaultSort: "data_visita",
	Sortable: map[string]bool{
		"nome":        true,
		"data_visita": true,
		"created_at":  true,
	},
}

var Streams = &Entity{
	Name:    "streams",
	Table:   "transmissoes",
	Columns: []string{"id", "titulo", "url", "data", "plataforma", "ao_vivo", "created_at", "updated_at"},
	Fields: map[string]string{
		"id":         "id",
		"titulo":     "title",
		"url":        "url",
		"data":       "date",
		"plataforma": "platform",
		"ao_vivo":    "isLive",
		"created_at": "createdAt",
		"updated_at": "updatedAt",
	},
	Internal:    map[string]bool{"created_at": true, "updated_at": true},
	DefaultSort: "data",
	Sortable: map[string]bool{
		"data":       true,
		"created_at": true,
	},
}

var Users = &Entity{
	Name:    "users",
	Table:   "usuarios",
	Columns: []string{"id", "nome", "email", "role", "created_at"},
	Fields: map[string]string{
		"id":         "id",
		"nome":       "name",
		"email":      "email",
		"role":       "role",
		"created_at": "createdAt",
	},
	// senha_hash has no Fields entry on purpose: it never reaches the client
	// and is never accepted from input.
	Internal:    map[string]bool{"created_at": true},
	DefaultSort: "nome",
	Sortable: map[string]bool{
		"nome":       true,
		"created_at": true,
	},
}

// Registry lists every mapped entity by public name.
var Registry = map[string]*Entity{
	Members.Name:    Members,
	Events.Name:     Events,
	Donations.Name:  Donations,
	Ministries.Name: Ministries,
	Visits.Name:     Visits,
	Visitors.Name:   Visitors,
	Streams.Name:    Streams,
	Users.Name:      Users,
}
