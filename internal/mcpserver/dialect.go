package mcpserver

// SQLDialectReference describes the files table and the SQL surface
// available to query_frontmatter callers.
const SQLDialectReference = `# Ansuz SQL Dialect Reference

Queries run against a single table named ` + "`files`" + `, rebuilt fresh from disk on
every call. The engine is SQLite.

## The files table

- One row per file under the configured base directory (all files, not
  glob-scoped; the glob parameter belongs to ` + "`inspect_frontmatter`" + ` only).
- Column ` + "`path`" + ` is always present: the file path relative to the base
  directory, forward slashes.
- One column per frontmatter field name seen anywhere in the file set, in
  first-seen order.
- **Every column is TEXT.** Scalars hold their literal form (` + "`42`" + `, ` + "`true`" + `,
  ` + "`2025-11-01`" + `); YAML lists and nested mappings hold JSON text
  (` + "`[\"ai\",\"python\"]`" + `, ` + "`{\"a\":1}`" + `). Fields absent from a file are NULL.

## Dialect notes

1. **JSON fields.** Decode with SQLite's JSON functions. Unnest an array
   column with the ` + "`json_each`" + ` table-valued function:

   ` + "```sql" + `
   SELECT path, j.value AS tag
   FROM files, json_each(files.tags) AS j
   WHERE files.tags IS NOT NULL;
   ` + "```" + `

2. **Casts.** ` + "`CAST(col AS INTEGER)`" + ` / ` + "`CAST(col AS REAL)`" + ` never error;
   non-numeric text casts to 0. Compare numerically only after checking the
   value looks numeric if that matters.

3. **Dates.** Date fields are plain text in their source form. Filter with
   string comparison or ` + "`LIKE`" + ` (` + "`WHERE date LIKE '2025-11-%'`" + `), or SQLite's
   ` + "`date()`" + ` function when values are ISO-8601.

4. **Malformed frontmatter.** Files whose frontmatter failed structured
   parsing still appear; affected fields hold their raw text (for example
   unresolved templating like ` + "`<% tp.date.now() %>`" + `). Such values simply
   fail comparisons and drop out of filters; they never raise errors.

5. **Quoting.** Field names are taken verbatim from frontmatter. Quote
   unusual column names with double quotes: ` + "`SELECT \"my field\" FROM files`" + `.

## Examples

` + "```sql" + `
-- Every distinct status and how often it occurs.
SELECT status, COUNT(*) AS n FROM files GROUP BY status ORDER BY n DESC;

-- Files tagged "ai", via JSON unnesting.
SELECT DISTINCT path FROM files, json_each(files.tags) AS j
WHERE j.value = 'ai';

-- November 2025 entries, newest first.
SELECT path, date FROM files
WHERE date LIKE '2025-11-%' ORDER BY date DESC;
` + "```" + `
`
