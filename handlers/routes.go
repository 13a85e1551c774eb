package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"school-backend/database"
	"school-backend/docs"
	"school-backend/models"
)

// Register mounts every resource on r and returns their documentation.
func Register(r *mux.Router, db *sqlx.DB, opts Options) ([]docs.Resource, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	m := &mounter{router: r, db: db, validate: newValidator(), opts: opts}

	mount[models.Student](m, Definition{
		Path: "/alunos",
		Tag:  "Alunos",
		Table: database.TableSpec{
			Name: "alunos", Keys: []string{"id_aluno"}, Generated: true, OrderBy: "nome_completo",
		},
		Messages: Messages{
			Created:  "Aluno criado com sucesso",
			Updated:  "Aluno atualizado com sucesso",
			Deleted:  "Aluno deletado com sucesso",
			NotFound: "Aluno não encontrado",
		},
	})

	mount[models.Class](m, Definition{
		Path: "/turmas",
		Tag:  "Turmas",
		Table: database.TableSpec{
			Name: "turma", Keys: []string{"id_turma"}, Generated: true, OrderBy: "nome_turma",
		},
		Messages: Messages{
			Created:  "Turma criada com sucesso",
			Updated:  "Turma atualizada com sucesso",
			Deleted:  "Turma deletada com sucesso",
			NotFound: "Turma não encontrada",
		},
	})

	mount[models.Teacher](m, Definition{
		Path: "/professores",
		Tag:  "Professores",
		Table: database.TableSpec{
			Name: "professor", Keys: []string{"id_professor"}, Generated: true, OrderBy: "nome_completo",
		},
		Messages: Messages{
			Created:  "Professor criado com sucesso",
			Updated:  "Professor atualizado com sucesso",
			Deleted:  "Professor deletado com sucesso",
			NotFound: "Professor não encontrado",
		},
	})

	mount[models.Payment](m, Definition{
		Path: "/pagamentos",
		Tag:  "Pagamentos",
		Table: database.TableSpec{
			Name: "pagamento", Keys: []string{"id_pagamento"}, Generated: true, OrderBy: "data_pagamento",
		},
		Messages: Messages{
			Created:  "Pagamento criado com sucesso",
			Updated:  "Pagamento atualizado com sucesso",
			Deleted:  "Pagamento deletado com sucesso",
			NotFound: "Pagamento não encontrado",
		},
	})

	mount[models.Attendance](m, Definition{
		Path: "/presencas",
		Tag:  "Presenças",
		Table: database.TableSpec{
			Name: "presenca", Keys: []string{"id_presenca"}, Generated: true, OrderBy: "data_presenca",
		},
		Messages: Messages{
			Created:  "Presença criada com sucesso",
			Updated:  "Presença atualizada com sucesso",
			Deleted:  "Presença deletada com sucesso",
			NotFound: "Presença não encontrada",
		},
	})

	mount[models.Activity](m, Definition{
		Path: "/atividades",
		Tag:  "Atividades",
		Table: database.TableSpec{
			Name: "atividade", Keys: []string{"id_atividade"}, Generated: true, OrderBy: "data_realizacao",
		},
		Messages: Messages{
			Created:  "Atividade criada com sucesso",
			Updated:  "Atividade atualizada com sucesso",
			Deleted:  "Atividade deletada com sucesso",
			NotFound: "Atividade não encontrada",
		},
	})

	mount[models.ActivityStudent](m, Definition{
		Path: "/atividades_alunos",
		Tag:  "Atividades-Alunos",
		Table: database.TableSpec{
			Name: "atividade_aluno", Keys: []string{"id_atividade", "id_aluno"},
		},
		Messages: Messages{
			Created:  "Atividade-Aluno criada com sucesso",
			Deleted:  "Atividade-Aluno deletada com sucesso",
			NotFound: "Atividade-Aluno não encontrada",
		},
	})

	mount[models.User](m, Definition{
		Path: "/usuarios",
		Tag:  "Usuários",
		Table: database.TableSpec{
			Name: "usuario", Keys: []string{"id_usuario"}, Generated: true, OrderBy: "login",
		},
		Messages: Messages{
			Created:  "Usuário criado com sucesso",
			Updated:  "Usuário atualizado com sucesso",
			Deleted:  "Usuário deletado com sucesso",
			NotFound: "Usuário não encontrado",
		},
	})

	mount[models.Category](m, Definition{
		Path: "/categories",
		Tag:  "Categorias",
		Table: database.TableSpec{
			Name: "categories", Keys: []string{"category_id"}, Generated: true, OrderBy: "category_name",
		},
		Messages: Messages{
			Created:  "Category created successfully",
			Updated:  "Category updated successfully",
			Deleted:  "Category deleted successfully",
			NotFound: "Category not found",
		},
	})

	details := mount[models.OrderDetail](m, Definition{
		Path: "/order-details",
		Tag:  "Detalhes do Pedido",
		Table: database.TableSpec{
			Name: "order_details", Keys: []string{"order_id", "product_id"},
		},
		Messages: Messages{
			Created:  "Order detail created successfully",
			Updated:  "Order detail updated successfully",
			Deleted:  "Order detail deleted successfully",
			NotFound: "Order detail not found",
		},
	})
	if details != nil {
		lines := &orderLines{res: details}
		r.HandleFunc("/order-details/{order_id:[0-9]+}", lines.List).Methods(http.MethodGet)
		m.addExtra("/order-details", lines.Doc())
	}

	if m.err != nil {
		return nil, m.err
	}
	return m.docs, nil
}

type mounter struct {
	router   *mux.Router
	db       *sqlx.DB
	validate *validator.Validate
	opts     Options

	docs []docs.Resource
	err  error
}

func (m *mounter) addExtra(path string, op docs.Operation) {
	for i := range m.docs {
		if m.docs[i].Path == path {
			m.docs[i].Extra = append(m.docs[i].Extra, op)
		}
	}
}

// mount builds the table and routes of one resource. After the first
// failure it does nothing and returns nil.
func mount[T any](m *mounter, def Definition) *Resource[T] {
	if m.err != nil {
		return nil
	}
	table, err := database.NewTable[T](m.db, def.Table)
	if err != nil {
		m.err = err
		return nil
	}
	res := NewResource(table, def, m.validate, m.opts)
	res.Register(m.router)
	m.docs = append(m.docs, res.Doc())
	return res
}
