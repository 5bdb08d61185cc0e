package entity

// Rol dato de referencia estático (tabla rol). Nivel define jerarquía: menor es más privilegio.
type Rol struct {
	ID     int64
	Codigo string
	Nombre string
	Nivel  int
}

// UsuarioRol asigna un rol a un usuario con alcance a una entidad concreta
// (tipo + id). La unicidad de (usuario, tipo_entidad, id_entidad, rol) se
// espera pero no la impone la DB.
type UsuarioRol struct {
	ID          int64
	IDUsuario   int64
	IDRol       int64
	TipoEntidad TipoEntidad
	IDEntidad   int64
	Activo      bool
	Auditoria
}
