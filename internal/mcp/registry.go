package mcp

import "sort"

// Registry is an immutable name→tool table built once at startup. Reads are
// lock-free; concurrent tool calls share the same instances.
type Registry struct {
	byName map[string]Tool
}

// NewRegistry builds a registry from the given tools. Registration is
// last-write-wins per name: a later tool replaces an earlier one with the
// same name, which is how a stub is upgraded to a remote implementation.
func NewRegistry(tools ...Tool) *Registry {
	byName := make(map[string]Tool, len(tools))
	for _, t := range tools {
		byName[t.Name()] = t
	}
	return &Registry{byName: byName}
}

// Get returns the tool registered under name. Unknown names are a caller
// error, signalled by ok == false.
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// List enumerates descriptors for every registered tool, sorted by name.
func (r *Registry) List() []ToolInfo {
	infos := make([]ToolInfo, 0, len(r.byName))
	for _, t := range r.byName {
		infos = append(infos, ToolInfo{
			Name:        t.Name(),
			Description: t.Description(),
			InputSchema: t.InputSchema(),
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// Names returns the sorted registered tool names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Tools returns every registered tool, sorted by name.
func (r *Registry) Tools() []Tool {
	tools := make([]Tool, 0, len(r.byName))
	for _, name := range r.Names() {
		tools = append(tools, r.byName[name])
	}
	return tools
}
