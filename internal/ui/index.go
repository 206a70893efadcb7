package ui

// indexHTML is the playground page. It talks to the JSON endpoints only;
// everything renders client-side.
const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>leapexpr playground</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 56rem; margin: 2rem auto; padding: 0 1rem; }
textarea { width: 100%; height: 6rem; font-family: ui-monospace, monospace; font-size: 0.95rem; }
pre { background: #f4f4f4; padding: 0.75rem; overflow-x: auto; }
.error { color: #b00020; }
table { border-collapse: collapse; width: 100%; }
td, th { border: 1px solid #ddd; padding: 0.3rem 0.5rem; text-align: left; font-size: 0.9rem; }
h2 { margin-top: 2rem; }
</style>
</head>
<body>
<h1>leapexpr playground</h1>
<p>Write a formula such as <code>if [age] &lt; 18 then "minor" else "adult" endif</code> and compile it.</p>
<textarea id="expr">[a] + [b] * 2</textarea>
<p><button onclick="compile()">Compile</button></p>
<pre id="result"></pre>
<h2>Function reference</h2>
<div id="functions"></div>
<script>
async function compile() {
  const expr = document.getElementById('expr').value;
  const res = await fetch('/api/compile?expr=' + encodeURIComponent(expr));
  const data = await res.json();
  const out = document.getElementById('result');
  out.className = data.error ? 'error' : '';
  out.textContent = data.error ? data.error : data.sql;
}
async function loadFunctions() {
  const res = await fetch('/api/functions');
  const cats = await res.json();
  const host = document.getElementById('functions');
  for (const cat of cats) {
    const h = document.createElement('h3');
    h.textContent = cat.category;
    host.appendChild(h);
    const tbl = document.createElement('table');
    tbl.innerHTML = '<tr><th>Function</th><th>Parameters</th><th>Description</th></tr>';
    for (const f of cat.functions) {
      const row = document.createElement('tr');
      row.innerHTML = '<td><code>' + f.name + '</code></td><td>' +
        (f.params || []).join(', ') + '</td><td>' + f.doc + '</td>';
      tbl.appendChild(row);
    }
    host.appendChild(tbl);
  }
}
loadFunctions();
</script>
</body>
</html>
`
